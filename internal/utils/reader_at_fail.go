package utils

import "io"

// ReaderAtFail provides a stub for a journal file which serves the given data but fails every read starting at an
// offset below FailBelow. As journals are scanned from the end towards the start, this allows us to simulate a
// read error in the middle of a scan which has already produced records.
type ReaderAtFail struct {
	Data      []byte
	FailBelow int64
	Err       error
}

func (r *ReaderAtFail) ReadAt(p []byte, off int64) (int, error) {
	if off < r.FailBelow {
		return 0, r.Err
	}
	if off > int64(len(r.Data)) {
		return 0, io.EOF
	}
	copyBytes := copy(p, r.Data[off:])
	if copyBytes < len(p) {
		return copyBytes, io.EOF
	}
	return copyBytes, nil
}
