package journey

import (
	"errors"
	"log"
	"time"
)

var (
	ErrInvalidWindow = errors.New("the begin of the stamp window must not be greater than its end")
	ErrNoRecords     = errors.New("the journal contains no records")
)

// Entry is a single table of contents entry. It pins down where the payload of the newest record of a name lives
// inside the journal file.
type Entry struct {
	// The name under which the record was appended.
	Name string

	// The stamp the record was appended with.
	Stamp uint64

	// The offset of the record payload from the start of the journal.
	Offset int64

	// The size of the record payload in bytes.
	Size int64
}

// TOC is the table of contents of a journal, keyed by record name.
type TOC map[string]Entry

// BuildTOC drains the given scanner and builds a table of contents from the records whose stamp falls into the
// window from beg to end, both inclusive. The scan runs from the newest record to the oldest, so the first
// occurrence of a name wins and shadowed records are left out. It returns the table together with the total number
// of records scanned, which includes the records the window filtered out.
func BuildTOC(scanner *Scanner, beg uint64, end uint64) (TOC, int, error) {
	toc := make(TOC)
	scanned := 0
	for scanner.Next() {
		scanned++
		value := scanner.Value()
		if value.Stamp < beg || value.Stamp > end {
			continue
		}
		if _, ok := toc[value.Name]; ok {
			continue
		}
		toc[value.Name] = Entry{
			Name:   value.Name,
			Stamp:  value.Stamp,
			Offset: value.Offset,
			Size:   value.Size,
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, ErrRecordNone) {
		return nil, 0, err
	}
	return toc, scanned, nil
}

// Load scans the journal file backwards and replaces the table of contents with the newest record of every name
// whose stamp falls into the window from beg to end, both inclusive. It fails with ErrInvalidWindow before
// touching the file when beg is greater than end, and with ErrNoRecords when the scan produces no records at all.
// A journal whose records all fall outside the window loads fine into an empty table.
//
// The previous table of contents stays in place when Load fails, so a journal keeps serving reads after a failed
// reload.
func (j *Journal) Load(beg uint64, end uint64) error {
	if beg > end {
		return ErrInvalidWindow
	}

	LoadTotal.Inc()
	start := time.Now()

	scanner, err := OpenScanner(j.filePath)
	if err != nil {
		return err
	}
	toc, scanned, err := BuildTOC(scanner, beg, end)
	if closeErr := scanner.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return err
	}
	if scanned == 0 {
		return ErrNoRecords
	}
	j.toc = toc

	duration := time.Since(start).Seconds()
	if duration > 1.0 {
		log.Printf("WARNING: Loading the table of contents needed %f seconds which is too slow.\n", duration)
	}
	LoadDuration.Observe(duration)
	return nil
}
