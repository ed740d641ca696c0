package journey_test

import (
	"math"
	"os"
	"path"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/r-lyeh-archived/journey/pkg/journey"
)

var _ = Describe("Compact", func() {
	Context("With journals in a temporary directory", func() {
		var dir string
		var sourcePath string
		var targetPath string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "test-journey-*")
			Expect(err).ToNot(HaveOccurred())
			sourcePath = path.Join(dir, "source.journey")
			targetPath = path.Join(dir, "target.journey")
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		newLoadedJournal := func(filePath string) *journey.Journal {
			journal, err := journey.New(filePath)
			Expect(err).ToNot(HaveOccurred())
			Expect(journal.AppendAt("hello.txt", []byte("previous"), 100)).To(Succeed())
			Expect(journal.AppendAt("notes.md", []byte("# notes"), 150)).To(Succeed())
			Expect(journal.AppendAt("hello.txt", []byte("latest"), 200)).To(Succeed())
			Expect(journal.Load(0, math.MaxUint64)).To(Succeed())
			return journal
		}

		It("should fail when the table of contents is empty", func() {
			journal, err := journey.New(sourcePath)
			Expect(err).ToNot(HaveOccurred())
			Expect(journal.Compact(targetPath)).To(MatchError(journey.ErrEmptyTOC))
			Expect(os.Stat(targetPath)).Error().To(MatchError(os.ErrNotExist))
		})

		It("should copy the reachable revisions and preserve their stamps", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(targetPath)).To(Succeed())

			target, err := journey.New(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(target.Load(0, math.MaxUint64)).To(Succeed())
			Expect(target.Len()).To(Equal(2))
			Expect(target.Read("hello.txt")).To(Equal([]byte("latest")))
			Expect(target.Read("notes.md")).To(Equal([]byte("# notes")))

			entries := target.Entries()
			Expect(entries[0].Name).To(Equal("hello.txt"))
			Expect(entries[0].Stamp).To(Equal(uint64(200)))
			Expect(entries[1].Name).To(Equal("notes.md"))
			Expect(entries[1].Stamp).To(Equal(uint64(150)))
		})

		It("should leave the shadowed revisions behind", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(targetPath)).To(Succeed())

			sourceInfo, err := os.Stat(sourcePath)
			Expect(err).ToNot(HaveOccurred())
			targetInfo, err := os.Stat(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(targetInfo.Size()).To(BeNumerically("<", sourceInfo.Size()))
		})

		It("should write the compacted records sorted by name", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(targetPath)).To(Succeed())

			scanner, err := journey.OpenScanner(targetPath)
			Expect(err).ToNot(HaveOccurred())
			names := []string(nil)
			for scanner.Next() {
				names = append(names, scanner.Value().Name)
			}
			Expect(scanner.Err()).To(MatchError(journey.ErrRecordNone))
			Expect(scanner.Close()).To(Succeed())

			// The scan walks from the newest record to the oldest, so the sorted order comes out reversed.
			Expect(names).To(Equal([]string{"notes.md", "hello.txt"}))
		})

		It("should produce the same bytes when compacting twice", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(targetPath)).To(Succeed())

			target, err := journey.New(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(target.Load(0, math.MaxUint64)).To(Succeed())
			secondTargetPath := path.Join(dir, "target-second.journey")
			Expect(target.Compact(secondTargetPath)).To(Succeed())

			targetRaw, err := os.ReadFile(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(os.ReadFile(secondTargetPath)).To(Equal(targetRaw))
		})

		It("should honor the window of the last load", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Load(0, 150)).To(Succeed())
			Expect(journal.Compact(targetPath)).To(Succeed())

			target, err := journey.New(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(target.Load(0, math.MaxUint64)).To(Succeed())
			Expect(target.Len()).To(Equal(2))
			Expect(target.Read("hello.txt")).To(Equal([]byte("previous")))

			entries := target.Entries()
			Expect(entries[0].Stamp).To(Equal(uint64(100)))
		})

		It("should append to a target which already holds records", func() {
			target, err := journey.New(targetPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(target.AppendAt("keep.txt", []byte("kept"), 50)).To(Succeed())

			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(targetPath)).To(Succeed())

			Expect(target.Load(0, math.MaxUint64)).To(Succeed())
			Expect(target.Len()).To(Equal(3))
			Expect(target.Read("keep.txt")).To(Equal([]byte("kept")))
			Expect(target.Read("hello.txt")).To(Equal([]byte("latest")))
		})

		It("should fail when the target file path is empty", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact("")).To(MatchError(journey.ErrPathEmpty))
		})

		It("should fail when the target can not be written", func() {
			journal := newLoadedJournal(sourcePath)
			Expect(journal.Compact(path.Join(dir, "missing", "target.journey"))).To(MatchError(os.ErrNotExist))
		})
	})
})
