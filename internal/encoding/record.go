package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNameEmpty   = errors.New("record name is empty")
	ErrNameInvalid = errors.New("record name contains a null byte")
)

// EncodeRecord writes one record for a file whose tail is at the absolute position pos: padding up to the next
// 8 byte boundary, the raw name bytes followed by a null terminator, padding, the payload bytes, padding, and the
// footer. It returns the total number of bytes written.
//
// The name must not be empty and must not contain a null byte. The payload may be empty.
func EncodeRecord(writer io.Writer, pos int64, name string, data []byte, stamp uint64) (int64, error) {
	if len(name) == 0 {
		return 0, ErrNameEmpty
	}
	if strings.IndexByte(name, 0) >= 0 {
		return 0, ErrNameInvalid
	}

	start := pos
	pad, err := WritePadding(writer, pos)
	if err != nil {
		return 0, err
	}
	pos += pad

	if _, err := io.WriteString(writer, name); err != nil {
		return 0, fmt.Errorf("writing record name: %w", err)
	}
	if _, err := writer.Write(padding[:1]); err != nil {
		return 0, fmt.Errorf("writing record name terminator: %w", err)
	}
	pos += int64(len(name)) + 1

	pad, err = WritePadding(writer, pos)
	if err != nil {
		return 0, err
	}
	pos += pad

	if len(data) > 0 {
		if _, err := writer.Write(data); err != nil {
			return 0, fmt.Errorf("writing record data: %w", err)
		}
	}
	pos += int64(len(data))

	pad, err = WritePadding(writer, pos)
	if err != nil {
		return 0, err
	}
	pos += pad

	footer := Footer{
		Stamp:   stamp,
		NameLen: uint64(len(name)),
		DataLen: uint64(len(data)),
		FileLen: uint64(pos - start),
		Magic:   Magic,
	}
	if err := footer.Write(writer); err != nil {
		return 0, err
	}
	pos += FooterSize
	return pos - start, nil
}

// EncodedSize returns the number of bytes EncodeRecord writes for a record beginning at the absolute file
// position pos. The size depends on pos because the leading padding does.
func EncodedSize(pos int64, nameLen int, dataLen int) int64 {
	size := PadLen(pos)
	size += int64(nameLen) + 1
	size += PadLen(pos + size)
	size += int64(dataLen)
	size += PadLen(pos + size)
	return size + FooterSize
}
