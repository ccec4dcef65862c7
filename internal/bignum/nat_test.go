package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    Nat
		want string
		bits int
	}{
		{"zero", Zero(), "0", 0},
		{"one", One(), "1", 1},
		{"from zero", FromUint64(0), "0", 0},
		{"from small", FromUint64(55), "55", 6},
		{"from max", FromUint64(math.MaxUint64), "18446744073709551615", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.n.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.n.BitLen(); got != tt.bits {
				t.Errorf("BitLen() = %d, want %d", got, tt.bits)
			}
		})
	}
}

func TestAdd_CarryPropagation(t *testing.T) {
	t.Parallel()
	max := FromUint64(math.MaxUint64)
	sum := max.Add(One())

	want := new(big.Int).Add(new(big.Int).SetUint64(math.MaxUint64), big.NewInt(1))
	if sum.String() != want.String() {
		t.Errorf("MaxUint64 + 1 = %s, want %s", sum, want)
	}
	if sum.BitLen() != 65 {
		t.Errorf("BitLen = %d, want 65", sum.BitLen())
	}

	// A long run of all-ones words must carry through every word.
	ones := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 640), big.NewInt(1))
	got := FromBig(ones).Add(One())
	if got.Big().Cmp(new(big.Int).Lsh(big.NewInt(1), 640)) != 0 {
		t.Errorf("2^640-1 + 1 = %s", got)
	}
}

func TestAdd_Commutative(t *testing.T) {
	t.Parallel()
	a := FromBig(mustBig("123456789012345678901234567890123456789"))
	b := FromUint64(42)
	if a.Add(b).Cmp(b.Add(a)) != 0 {
		t.Error("Add should be commutative")
	}
	if a.Add(Zero()).Cmp(a) != 0 {
		t.Error("x + 0 should equal x")
	}
}

func TestAddInto_ReusesStorage(t *testing.T) {
	t.Parallel()
	dst := Nat{words: make([]Word, 0, 8)}
	x := FromUint64(40)
	y := FromUint64(2)

	z := AddInto(dst, x, y)
	if z.String() != "42" {
		t.Fatalf("AddInto = %s, want 42", z)
	}
	if &z.words[:1][0] != &dst.words[:1][0] {
		t.Error("AddInto should write into dst's backing array when it has capacity")
	}
	if x.String() != "40" || y.String() != "2" {
		t.Error("operands must not be modified")
	}
}

func TestString_ChunkBoundaries(t *testing.T) {
	t.Parallel()
	for _, s := range []string{
		"10000000000000000000",
		"9999999999999999999",
		"1000000000",
		"999999999",
		"100000000000000000000000000000000000000",
		"354224848179261915075",
	} {
		if got := FromBig(mustBig(s)).String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	small := FromUint64(7)
	large := FromBig(mustBig("340282366920938463463374607431768211456"))
	if small.Cmp(large) != -1 || large.Cmp(small) != 1 || large.Cmp(large) != 0 {
		t.Error("Cmp ordering is wrong")
	}
	if FromUint64(8).Cmp(small) != 1 {
		t.Error("8 should compare greater than 7")
	}
}

func TestNat_MatchesMathBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	wordsGen := gen.SliceOf(gen.UInt64())

	properties.Property("Add agrees with big.Int.Add", prop.ForAll(
		func(xs, ys []uint64) bool {
			x, y := fromUint64s(xs), fromUint64s(ys)
			want := new(big.Int).Add(x, y)
			return FromBig(x).Add(FromBig(y)).Big().Cmp(want) == 0
		},
		wordsGen, wordsGen,
	))

	properties.Property("String agrees with big.Int.String", prop.ForAll(
		func(xs []uint64) bool {
			x := fromUint64s(xs)
			return FromBig(x).String() == x.String()
		},
		wordsGen,
	))

	properties.Property("BitLen agrees with big.Int.BitLen", prop.ForAll(
		func(xs []uint64) bool {
			x := fromUint64s(xs)
			return FromBig(x).BitLen() == x.BitLen()
		},
		wordsGen,
	))

	properties.TestingRun(t)
}

func fromUint64s(xs []uint64) *big.Int {
	z := new(big.Int)
	for _, v := range xs {
		z.Lsh(z, 64)
		z.Or(z, new(big.Int).SetUint64(v))
	}
	return z
}

func mustBig(s string) *big.Int {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad literal " + s)
	}
	return z
}
