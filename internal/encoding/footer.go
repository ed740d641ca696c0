package encoding

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

var ErrFooterMagicMismatch = errors.New("invalid journal footer magic")

// Footer describes the fixed-size trailer written after every record. A journal has no file header, a reader
// positions itself at the end of the file and walks footers backwards, so the footer holds everything needed to
// find the start of its record and the footer before it.
type Footer struct {
	// The stamp of the record, as supplied by the caller on append. Encoded as eight bytes.
	Stamp uint64

	// The length of the record name in bytes, the null terminator excluded. Encoded as eight bytes.
	NameLen uint64

	// The length of the record payload in bytes. Zero is a valid length. Encoded as eight bytes.
	DataLen uint64

	// The byte count of [pad][name]['\0'][pad][data][pad], the footer itself excluded. Subtracting it from the
	// footer start yields the start of the record span. Encoded as eight bytes.
	FileLen uint64

	// The sentinel identifying a valid footer. Either byte orientation of the sentinel is accepted when decoding.
	// Encoded as eight bytes.
	Magic uint64
}

// FooterSize provides the size in bytes of the footer: five 64-bit words.
const FooterSize = 5 * 8

// Magic holds the footer sentinel, the bytes "journey1" read as a little-endian 64-bit integer.
const Magic uint64 = 0x3179656E72756F6A

// MagicSwapped holds the sentinel as written by a producer of the opposite endianness.
const MagicSwapped uint64 = 0x6A6F75726E657931

// Write serializes the footer and outputs it to the given writer.
func (f *Footer) Write(writer io.Writer) error {
	var buffer [FooterSize]byte
	Endian.PutUint64(buffer[0:8], f.Stamp)
	Endian.PutUint64(buffer[8:16], f.NameLen)
	Endian.PutUint64(buffer[16:24], f.DataLen)
	Endian.PutUint64(buffer[24:32], f.FileLen)
	Endian.PutUint64(buffer[32:40], f.Magic)
	if _, err := writer.Write(buffer[:]); err != nil {
		return fmt.Errorf("writing record footer: %w", err)
	}
	return nil
}

// Read deserializes the footer from the given reader. It validates the footer after reading.
func (f *Footer) Read(reader io.Reader) error {
	var buffer [FooterSize]byte
	if _, err := io.ReadFull(reader, buffer[:]); err != nil {
		return fmt.Errorf("reading record footer: %w", err)
	}
	return f.Decode(buffer[:])
}

// Decode deserializes the footer from a buffer of at least FooterSize bytes. It rejects the footer when the magic
// matches neither orientation of the sentinel. A footer written with the opposite endianness has its numeric
// fields normalized to native byte order, so callers always see usable lengths.
func (f *Footer) Decode(buffer []byte) error {
	if len(buffer) < FooterSize {
		return fmt.Errorf("decoding record footer: need %d bytes but got %d", FooterSize, len(buffer))
	}
	f.Stamp = Endian.Uint64(buffer[0:8])
	f.NameLen = Endian.Uint64(buffer[8:16])
	f.DataLen = Endian.Uint64(buffer[16:24])
	f.FileLen = Endian.Uint64(buffer[24:32])
	f.Magic = Endian.Uint64(buffer[32:40])
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Magic == MagicSwapped {
		f.Stamp = bits.ReverseBytes64(f.Stamp)
		f.NameLen = bits.ReverseBytes64(f.NameLen)
		f.DataLen = bits.ReverseBytes64(f.DataLen)
		f.FileLen = bits.ReverseBytes64(f.FileLen)
		f.Magic = Magic
	}
	return nil
}

// Validate makes sure that the footer carries the sentinel in one of its two byte orientations.
func (f *Footer) Validate() error {
	if f.Magic != Magic && f.Magic != MagicSwapped {
		return ErrFooterMagicMismatch
	}
	return nil
}

// RecordBounds derives the absolute name and payload offsets of the record whose footer starts at footerStart. ok
// is false when the lengths in the footer can not describe a record at this position: the record span must lie
// inside the file, and re-deriving the layout with the encoder's padding arithmetic must land exactly back on
// footerStart.
func RecordBounds(footerStart int64, footer *Footer) (nameOffset int64, dataOffset int64, ok bool) {
	if footer.FileLen > uint64(footerStart) {
		return 0, 0, false
	}
	spanStart := footerStart - int64(footer.FileLen)

	nameOffset = spanStart + PadLen(spanStart)
	if nameOffset > footerStart || footer.NameLen >= uint64(footerStart-nameOffset) {
		return 0, 0, false
	}
	nameEnd := nameOffset + int64(footer.NameLen) + 1

	dataOffset = nameEnd + PadLen(nameEnd)
	if dataOffset > footerStart || footer.DataLen > uint64(footerStart-dataOffset) {
		return 0, 0, false
	}
	dataEnd := dataOffset + int64(footer.DataLen)

	if dataEnd+PadLen(dataEnd) != footerStart {
		return 0, 0, false
	}
	return nameOffset, dataOffset, true
}
