// Command cabi builds synapse as a C shared library.
//
//	go build -buildmode=c-shared -o libsynapse.so ./cabi
//
// Networks are addressed by opaque handles. Every array argument is a
// pointer plus an explicit length; a zero handle, a NULL pointer or a
// non-positive length makes the call a no-op. Functions that can fail return
// 0 on success and -1 otherwise; SynapseLastError describes the failure.
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/born-ml/synapse/internal/handle"
)

func main() {}

func ints(p *C.int, n C.int) []int {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, int(n))
	out := make([]int, len(src))
	for i, v := range src {
		out[i] = int(v)
	}
	return out
}

// doubles aliases C memory without copying; callers must not retain it.
func doubles(p *C.double, n C.int) []float64 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(p)), int(n))
}

func status(err error) C.int {
	if err != nil {
		return -1
	}
	return 0
}

//export SynapseCreate
func SynapseCreate() C.uint64_t {
	return C.uint64_t(handle.Default.Create())
}

//export SynapseDestroy
func SynapseDestroy(h C.uint64_t) {
	handle.Default.Destroy(handle.Handle(h))
}

//export SynapseSetup
func SynapseSetup(h C.uint64_t, structure *C.int, length C.int) C.int {
	s := ints(structure, length)
	if s == nil {
		return -1
	}
	return status(handle.Default.Setup(handle.Handle(h), s))
}

// SynapseForwardPass writes up to outLength outputs into out and returns the
// size of the output layer, or -1 on failure.
//
//export SynapseForwardPass
func SynapseForwardPass(h C.uint64_t, inputs *C.double, numInputs C.int, out *C.double, outLength C.int) C.int {
	in := doubles(inputs, numInputs)
	if in == nil {
		return -1
	}
	n, err := handle.Default.ForwardPass(handle.Handle(h), in, doubles(out, outLength))
	if err != nil {
		return -1
	}
	return C.int(n)
}

//export SynapseBackPropagate
func SynapseBackPropagate(h C.uint64_t, expected *C.double, numExpected C.int) C.int {
	e := doubles(expected, numExpected)
	if e == nil {
		return -1
	}
	return status(handle.Default.BackPropagate(handle.Handle(h), e))
}

//export SynapseBackPropagateRMS
func SynapseBackPropagateRMS(h C.uint64_t, expected *C.double, numExpected C.int) C.int {
	e := doubles(expected, numExpected)
	if e == nil {
		return -1
	}
	return status(handle.Default.BackPropagateRMS(handle.Handle(h), e))
}

//export SynapseSave
func SynapseSave(h C.uint64_t, path *C.char) C.int {
	if path == nil {
		return -1
	}
	f, err := os.Create(C.GoString(path))
	if err != nil {
		return -1
	}
	err = handle.Default.Save(handle.Handle(h), f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return status(err)
}

// SynapseLoad returns a new handle, or 0 on failure.
//
//export SynapseLoad
func SynapseLoad(path *C.char) C.uint64_t {
	if path == nil {
		return 0
	}
	f, err := os.Open(C.GoString(path))
	if err != nil {
		return 0
	}
	defer f.Close()

	h, err := handle.Default.Load(f)
	if err != nil {
		return 0
	}
	return C.uint64_t(h)
}

// SynapseReport returns the network table as a string the caller must
// release with free.
//
//export SynapseReport
func SynapseReport(h C.uint64_t) *C.char {
	text, err := handle.Default.Report(handle.Handle(h))
	if err != nil {
		return nil
	}
	return C.CString(text)
}

// SynapseLastError returns the last failure message for h, or NULL. The
// caller must release it with free.
//
//export SynapseLastError
func SynapseLastError(h C.uint64_t) *C.char {
	msg := handle.Default.LastError(handle.Handle(h))
	if msg == "" {
		return nil
	}
	return C.CString(msg)
}
