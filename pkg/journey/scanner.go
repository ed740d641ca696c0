package journey

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/r-lyeh-archived/journey/internal/encoding"
	"github.com/r-lyeh-archived/journey/internal/utils"
)

var ErrRecordNone = errors.New("this is no journey record")

// Scanner provides functionality for walking the records of a journal file from the newest to the oldest. It
// decodes the footer at the current position and uses its length field to move to the record before it.
//
// It is not thread safe and should only be used in a single go routine. Otherwise, external synchronization must be
// provided.
type Scanner struct {
	noCopy utils.NoCopy

	// The journal to scan records from.
	reader io.ReaderAt

	// The end of the record to decode next. Scanning moves this towards the start of the journal. The first record
	// starts at the end of the file, because the newest footer is the last thing written.
	pos int64

	// Whether Next should load the record payload along with the footer.
	eagerData bool

	// The buffer to hold the record name and its terminator during decoding. Pre-allocated to reduce the number of
	// allocations.
	name []byte

	// The value the scanner returns. Only contains useful data if err is nil.
	value ScannerValue

	// The error for the last operation. If this is nil, the content of value can be used.
	err error
}

// ScannerValue is the record returned by the Scanner.
type ScannerValue struct {
	// The name under which the record was appended.
	Name string

	// The stamp the record was appended with.
	Stamp uint64

	// The offset of the record payload from the start of the journal.
	Offset int64

	// The size of the record payload in bytes.
	Size int64

	// The record payload. Only populated when the scanner was created with WithEagerData.
	Data []byte
}

// ScannerOption describes the function signature which all scanner options need to implement.
type ScannerOption func(s *Scanner)

// WithEagerData makes the scanner load the payload of every record it decodes. Without this option, Value().Data
// stays nil and the payload is reachable through Value().Offset and Value().Size.
func WithEagerData() ScannerOption {
	return func(s *Scanner) {
		s.eagerData = true
	}
}

// OpenScanner creates a new scanner for the journal file path given as parameter.
//
// To avoid resources leaking, the returned Scanner needs to be closed by calling Close().
func OpenScanner(filePath string, options ...ScannerOption) (*Scanner, error) {
	file, err := os.OpenFile(filePath, os.O_RDONLY, 0) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, fmt.Errorf("opening journal %q: %w", filePath, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		if closeErr := file.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, fmt.Errorf("reading file size of journal %q: %w", filePath, err)
	}
	return NewScanner(file, fileInfo.Size(), options...), nil
}

// NewScanner creates a new scanner for the given reader, which holds a journal in its first size bytes.
func NewScanner(reader io.ReaderAt, size int64, options ...ScannerOption) *Scanner {
	scanner := &Scanner{
		reader: reader,
		pos:    size,
		name:   make([]byte, 256),
	}
	for _, option := range options {
		option(scanner)
	}
	return scanner
}

// Next reports if a record has been successfully decoded. When it returns true, Err() returns nil and Value()
// contains valid data. When it returns false, the scan is over: Err() matches ErrRecordNone when the scanner
// reached the start of the journal or bytes which are no journey record, and reports any other error as it is.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if s.err = s.next(); s.err != nil {
		return false
	}
	return true
}

func (s *Scanner) next() error {
	if s.pos < encoding.FooterSize {
		return fmt.Errorf("%w: %d bytes remaining", ErrRecordNone, s.pos)
	}

	// Decode the footer sitting at the current end position.
	footerStart := s.pos - encoding.FooterSize
	var buffer [encoding.FooterSize]byte
	if _, err := s.reader.ReadAt(buffer[:], footerStart); err != nil {
		return fmt.Errorf("reading footer at offset %d: %w", footerStart, err)
	}
	var footer encoding.Footer
	if err := footer.Decode(buffer[:]); err != nil {
		return errors.Join(ErrRecordNone, err)
	}

	nameOffset, dataOffset, ok := encoding.RecordBounds(footerStart, &footer)
	if !ok {
		return fmt.Errorf("%w: lengths at offset %d do not describe a record inside the journal", ErrRecordNone, footerStart)
	}

	// Read the name together with its terminator. A missing terminator means the footer magic matched by accident.
	nameBytes := int(footer.NameLen) + 1 //nolint:gosec // RecordBounds keeps the length inside the file size.
	if len(s.name) < nameBytes {
		s.name = make([]byte, nameBytes)
	}
	if _, err := s.reader.ReadAt(s.name[:nameBytes], nameOffset); err != nil {
		return fmt.Errorf("reading record name at offset %d: %w", nameOffset, err)
	}
	if s.name[footer.NameLen] != 0 {
		return fmt.Errorf("%w: the record name at offset %d is missing its terminator", ErrRecordNone, nameOffset)
	}

	s.value = ScannerValue{
		Name:   string(s.name[:footer.NameLen]),
		Stamp:  footer.Stamp,
		Offset: dataOffset,
		Size:   int64(footer.DataLen), //nolint:gosec // RecordBounds keeps the length inside the file size.
	}
	if s.eagerData && footer.DataLen > 0 {
		s.value.Data = make([]byte, footer.DataLen)
		if _, err := s.reader.ReadAt(s.value.Data, dataOffset); err != nil {
			return fmt.Errorf("reading record payload at offset %d: %w", dataOffset, err)
		}
	}

	s.pos = footerStart - int64(footer.FileLen) //nolint:gosec // RecordBounds keeps the length inside the file size.
	return nil
}

// Value returns the last record decoded from the journal. The value is only valid after the first call to Next()
// and while Err() is nil.
func (s *Scanner) Value() ScannerValue {
	return s.value
}

// Err returns the error for the last call to Next().
func (s *Scanner) Err() error {
	return s.err
}

// Close closes the underlying reader when it is closable.
func (s *Scanner) Close() error {
	closer, ok := s.reader.(io.Closer)
	if !ok {
		return nil
	}
	if err := closer.Close(); err != nil {
		return err
	}
	return nil
}
