// Package bignum implements the small slice of arbitrary-precision unsigned
// arithmetic the linear Fibonacci recurrence needs: construction from small
// values, addition with carry propagation, comparison, and decimal rendering.
//
// A Nat is a little-endian vector of machine words with no high zero words.
// Nat values are treated as immutable by the exported API; AddInto is the one
// operation that writes into caller-provided storage.
package bignum

import (
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Word is a single machine word of a Nat.
type Word = uint

const (
	// decimalChunk is the largest power of ten that fits in a Word.
	decimalChunk Word = 1e19*(bits.UintSize/64) + 1e9*(1-bits.UintSize/64)
	// decimalChunkDigits is the number of digits in decimalChunk minus one.
	decimalChunkDigits = 19*(bits.UintSize/64) + 9*(1-bits.UintSize/64)
)

// Nat is an arbitrary-precision natural number.
type Nat struct {
	words []Word
}

// Zero returns 0.
func Zero() Nat { return Nat{} }

// One returns 1.
func One() Nat { return Nat{words: []Word{1}} }

// FromUint64 returns v as a Nat.
func FromUint64(v uint64) Nat {
	if v == 0 {
		return Nat{}
	}
	if bits.UintSize == 32 && v>>32 != 0 {
		return Nat{words: []Word{Word(v), Word(v >> 32)}}
	}
	return Nat{words: []Word{Word(v)}}
}

// FromBig converts a non-negative big.Int. The sign of x is ignored.
func FromBig(x *big.Int) Nat {
	src := x.Bits()
	words := make([]Word, len(src))
	for i, w := range src {
		words[i] = Word(w)
	}
	return Nat{words: normalize(words)}
}

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool { return len(x.words) == 0 }

// Len returns the number of words in x.
func (x Nat) Len() int { return len(x.words) }

// BitLen returns the length of x in bits. BitLen of 0 is 0.
func (x Nat) BitLen() int {
	if len(x.words) == 0 {
		return 0
	}
	top := len(x.words) - 1
	return top*bits.UintSize + bits.Len(x.words[top])
}

// Add returns x + y in freshly allocated storage.
func (x Nat) Add(y Nat) Nat {
	return AddInto(Nat{}, x, y)
}

// AddInto computes x + y, reusing dst's backing array when it is large
// enough. dst must not share storage with x or y.
func AddInto(dst, x, y Nat) Nat {
	if len(x.words) < len(y.words) {
		x, y = y, x
	}
	n := len(x.words) + 1
	z := dst.words
	if cap(z) < n {
		z = make([]Word, n)
	} else {
		z = z[:n]
	}

	var carry Word
	i := 0
	for ; i < len(y.words); i++ {
		z[i], carry = bits.Add(x.words[i], y.words[i], carry)
	}
	for ; i < len(x.words); i++ {
		z[i], carry = bits.Add(x.words[i], 0, carry)
	}
	z[i] = carry
	return Nat{words: normalize(z)}
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Nat) Cmp(y Nat) int {
	switch {
	case len(x.words) < len(y.words):
		return -1
	case len(x.words) > len(y.words):
		return 1
	}
	for i := len(x.words) - 1; i >= 0; i-- {
		switch {
		case x.words[i] < y.words[i]:
			return -1
		case x.words[i] > y.words[i]:
			return 1
		}
	}
	return 0
}

// Big converts x to a big.Int.
func (x Nat) Big() *big.Int {
	words := make([]big.Word, len(x.words))
	for i, w := range x.words {
		words[i] = big.Word(w)
	}
	return new(big.Int).SetBits(words)
}

// String returns the decimal representation of x.
func (x Nat) String() string {
	if len(x.words) == 0 {
		return "0"
	}

	// Peel decimal chunks off a scratch copy, least significant first.
	q := make([]Word, len(x.words))
	copy(q, x.words)
	chunks := make([]Word, 0, len(q)*bits.UintSize/(3*decimalChunkDigits)+1)
	for len(q) > 0 {
		var r Word
		for i := len(q) - 1; i >= 0; i-- {
			q[i], r = bits.Div(r, q[i], decimalChunk)
		}
		chunks = append(chunks, r)
		q = normalize(q)
	}

	var b strings.Builder
	b.Grow(len(chunks) * decimalChunkDigits)
	b.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(chunks[i]), 10)
		b.WriteString(strings.Repeat("0", decimalChunkDigits-len(s)))
		b.WriteString(s)
	}
	return b.String()
}

// normalize drops high zero words.
func normalize(z []Word) []Word {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}
