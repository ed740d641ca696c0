package journey

import (
	"errors"
	"fmt"
	"log"
	"time"
)

var ErrEmptyTOC = errors.New("the table of contents is empty, there is nothing to compact")

// Compact writes the records reachable through the table of contents into a second journal at the given file
// path, sorted by name and with their stamps preserved. Shadowed revisions and records outside the window of the
// last Load are left behind, which makes compacting an already compacted journal a no-op in content.
//
// The target journal is appended to, not truncated. Compaction fails on the first record which can not be copied.
func (j *Journal) Compact(targetPath string) error {
	if len(j.toc) == 0 {
		return ErrEmptyTOC
	}

	CompactTotal.Inc()
	start := time.Now()

	target, err := New(targetPath)
	if err != nil {
		return err
	}
	target.syncOnAppend = j.syncOnAppend

	for _, entry := range j.Entries() {
		data, err := j.Read(entry.Name)
		if err != nil {
			return fmt.Errorf("compacting record %q: %w", entry.Name, err)
		}
		if err := target.AppendAt(entry.Name, data, entry.Stamp); err != nil {
			return fmt.Errorf("compacting record %q: %w", entry.Name, err)
		}
	}

	duration := time.Since(start).Seconds()
	if duration > 1.0 {
		log.Printf("WARNING: Compacting the journal needed %f seconds which is too slow.\n", duration)
	}
	CompactDuration.Observe(duration)
	return nil
}
