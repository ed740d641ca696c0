// Package encoding implements the binary layout of a journey record. A record is written as
// [pad][name]['\0'][pad][data][pad][footer], where each pad aligns the absolute file position to the next 8 byte
// boundary and the footer carries the lengths needed to walk back to the start of the record.
package encoding

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Endian is the endianness the journal uses for serializing/deserializing integers to file.
var Endian = binary.LittleEndian

// Align is the boundary every record sub-field starts at, in bytes.
const Align = 8

// PadLen returns the number of zero bytes needed to move pos up to the next multiple of Align. The result is in
// the range [0, Align).
func PadLen(pos int64) int64 {
	return (((pos + Align) &^ (Align - 1)) - pos) % Align
}

// padding is the source for pad bytes. Pads are always written as zeros.
var padding [Align]byte

// WritePadding writes the pad bytes needed at the absolute file position pos and returns how many bytes it wrote.
func WritePadding(writer io.Writer, pos int64) (int64, error) {
	pad := PadLen(pos)
	if pad == 0 {
		return 0, nil
	}
	if _, err := writer.Write(padding[:pad]); err != nil {
		return 0, fmt.Errorf("writing record padding: %w", err)
	}
	return pad, nil
}
