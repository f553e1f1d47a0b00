package snapshot

import "errors"

// Sentinel kinds for snapshot codec errors.
var (
	ErrReadSnapshot   = errors.New("read snapshot failed")
	ErrDecodeSnapshot = errors.New("decode snapshot failed")
	ErrEncodeSnapshot = errors.New("encode snapshot failed")
	ErrWriteSnapshot  = errors.New("write snapshot failed")
)
