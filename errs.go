package jstream

import "errors"

var (
	// ErrSource reports an unrecoverable fault in the byte source,
	// distinct from clean exhaustion.
	ErrSource = errors.New("source read failed")

	// ErrEncoding reports a malformed or unsupported leading encoding
	// marker.
	ErrEncoding = errors.New("invalid encoding marker")
)
