// Command libfibbridge builds the native export table as a C shared library:
//
//	go build -buildmode=c-shared -o libfibbridge.so ./cmd/libfibbridge
//
// Strings returned to the host are allocated with malloc and must be released
// with fibbridge_free.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

//export fibbridge_fibonacci
func fibbridge_fibonacci(n C.uint32_t) *C.char {
	s, err := callString("fibonacci", uint32(n))
	if err != nil {
		return nil
	}
	return C.CString(s)
}

//export fibbridge_hello
func fibbridge_hello(name *C.char) *C.char {
	var arg any
	if name != nil {
		arg = C.GoString(name)
	}
	s, err := callString("helloNapi", arg)
	if err != nil {
		return nil
	}
	return C.CString(s)
}

//export fibbridge_plus100
func fibbridge_plus100(input C.uint32_t, out *C.uint32_t) C.int {
	v, err := callUint32("plus100", uint32(input))
	if err != nil {
		return 1
	}
	if out != nil {
		*out = C.uint32_t(v)
	}
	return 0
}

//export fibbridge_free
func fibbridge_free(p *C.char) {
	C.free(unsafe.Pointer(p))
}

func main() {}
