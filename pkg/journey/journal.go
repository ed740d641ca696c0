package journey

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/r-lyeh-archived/journey/internal/encoding"
)

// Version is the version of the journey library.
const Version = "1.0.0"

var (
	ErrPathEmpty = errors.New("the journal file path must not be empty")
	ErrNotFound  = errors.New("no record with this name is in the table of contents")

	// The record name rules are enforced while encoding. Re-exported so callers can match on them.
	ErrNameEmpty   = encoding.ErrNameEmpty
	ErrNameInvalid = encoding.ErrNameInvalid
)

// Journal provides the main functionality for working with a journal file. It binds a file path to a table of
// contents and reads and appends records through it. The file is opened and closed for every operation, so a
// Journal does not hold on to any resources between calls.
//
// Journal is not thread safe and should only be used in a single go routine. Otherwise, external synchronization
// must be provided.
type Journal struct {
	// The path of the journal file on disk. The file does not need to exist until the first append.
	filePath string

	// The table of contents as built by the last successful call to Load. Reads resolve names through this table
	// only, appends do not touch it.
	toc TOC

	// Whether every append flushes the journal file to stable storage before returning.
	syncOnAppend bool
}

// JournalOption describes the function signature which all journal options need to implement.
type JournalOption func(j *Journal)

// WithSyncOnAppend makes every append flush the journal file to stable storage before returning.
// Can be used with New.
func WithSyncOnAppend() JournalOption {
	return func(j *Journal) {
		j.syncOnAppend = true
	}
}

// New creates a journal bound to the given file path. The file is not touched and does not need to exist yet. Call
// Load to make the records already in the file readable.
func New(filePath string, options ...JournalOption) (*Journal, error) {
	if filePath == "" {
		return nil, ErrPathEmpty
	}

	journal := &Journal{
		filePath: filePath,
	}
	for _, option := range options {
		option(journal)
	}
	return journal, nil
}

// Init rebinds the journal to the given file path and discards the table of contents. Options given to New are
// kept. Call Load to make the records in the new file readable.
func (j *Journal) Init(filePath string) error {
	if filePath == "" {
		return ErrPathEmpty
	}

	j.filePath = filePath
	j.toc = nil
	return nil
}

// FilePath returns the file path of the journal file.
func (j *Journal) FilePath() string {
	return j.filePath
}

// Len returns the number of records reachable through the table of contents.
func (j *Journal) Len() int {
	return len(j.toc)
}

// Entries returns the table of contents sorted by record name.
func (j *Journal) Entries() []Entry {
	result := make([]Entry, 0, len(j.toc))
	for _, entry := range j.toc {
		result = append(result, entry)
	}
	slices.SortFunc(result, func(a Entry, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Read returns the payload of the record the given name resolves to in the table of contents. It returns
// ErrNotFound for names the table does not know about, which includes every name before the first call to Load.
func (j *Journal) Read(name string) ([]byte, error) {
	entry, ok := j.toc[name]
	if !ok {
		return nil, fmt.Errorf("record %q: %w", name, ErrNotFound)
	}

	file, err := os.OpenFile(j.filePath, os.O_RDONLY, 0) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, fmt.Errorf("opening journal %q: %w", j.filePath, err)
	}

	data := make([]byte, entry.Size)
	if _, err := file.ReadAt(data, entry.Offset); err != nil {
		err = fmt.Errorf("reading record %q: %w", name, err)
		if closeErr := file.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}
	return data, nil
}

// Append appends the given payload under the given name, stamped with the current wall-clock time. See AppendAt
// for the details.
func (j *Journal) Append(name string, data []byte) error {
	return j.AppendAt(name, data, Now())
}

// AppendAt appends the given payload under the given name with an explicit stamp. The record goes to disk in a
// single write, so a reader never observes a half-written footer. The table of contents is not updated, call Load
// to make the new record visible.
func (j *Journal) AppendAt(name string, data []byte, stamp uint64) error {
	AppendTotal.Inc()

	file, err := os.OpenFile(j.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o664) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return fmt.Errorf("opening journal %q: %w", j.filePath, err)
	}
	if err := j.appendAt(file, name, data, stamp); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return nil
}

func (j *Journal) appendAt(file *os.File, name string, data []byte, stamp uint64) error {
	// With O_APPEND the write lands at the end of the file, the seek only reports where that end currently is. The
	// padding of the record depends on it.
	tail, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seeking to the end of the journal: %w", err)
	}

	var buffer bytes.Buffer
	if _, err := encoding.EncodeRecord(&buffer, tail, name, data, stamp); err != nil {
		return fmt.Errorf("encoding record %q: %w", name, err)
	}
	if _, err := file.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("writing record %q: %w", name, err)
	}

	if j.syncOnAppend {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("syncing the journal: %w", err)
		}
	}
	return nil
}

// Now returns the current wall-clock time in seconds since the Unix epoch, which is what Append stamps records
// with.
func Now() uint64 {
	return uint64(time.Now().Unix()) //nolint:gosec // The wall-clock time is not negative.
}
