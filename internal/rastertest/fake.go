// Package rastertest provides a recording raster.Source for encoder tests.
package rastertest

import (
	"bytes"
	"fmt"
	"sync"
)

// Call is one recorded Rasterize request.
type Call struct {
	Width  int
	Height int
}

// Fake returns a deterministic buffer per request and records every call.
// Payloads are Length bytes when Length > 0, otherwise width bytes, each
// filled with the call's ordinal so payloads are distinguishable.
type Fake struct {
	Length int
	// FailOn makes the n-th call (1-based) fail; 0 never fails.
	FailOn int
	Err    error

	mu    sync.Mutex
	calls []Call
}

// Rasterize implements raster.Source.
func (f *Fake) Rasterize(width, height int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Width: width, Height: height})
	n := len(f.calls)
	if f.FailOn > 0 && n == f.FailOn {
		if f.Err != nil {
			return nil, f.Err
		}
		return nil, fmt.Errorf("renderer refused %dx%d", width, height)
	}

	length := f.Length
	if length <= 0 {
		length = width
	}
	return bytes.Repeat([]byte{byte(n)}, length), nil
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
