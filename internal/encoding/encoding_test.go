package encoding_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/r-lyeh-archived/journey/internal/encoding"
)

var _ = Describe("PadLen", func() {
	It("should return zero on aligned positions", func() {
		for _, pos := range []int64{0, 8, 16, 64, 4096} {
			Expect(encoding.PadLen(pos)).To(Equal(int64(0)))
		}
	})

	It("should pad up to the next boundary", func() {
		Expect(encoding.PadLen(1)).To(Equal(int64(7)))
		Expect(encoding.PadLen(2)).To(Equal(int64(6)))
		Expect(encoding.PadLen(3)).To(Equal(int64(5)))
		Expect(encoding.PadLen(7)).To(Equal(int64(1)))
		Expect(encoding.PadLen(9)).To(Equal(int64(7)))
	})

	It("should always land on a boundary", func() {
		for pos := int64(0); pos < 64; pos++ {
			pad := encoding.PadLen(pos)
			Expect(pad).To(BeNumerically(">=", 0))
			Expect(pad).To(BeNumerically("<", encoding.Align))
			Expect((pos + pad) % encoding.Align).To(Equal(int64(0)))
		}
	})
})

var _ = Describe("WritePadding", func() {
	It("should write nothing on aligned positions", func() {
		var buffer bytes.Buffer
		Expect(encoding.WritePadding(&buffer, 16)).To(Equal(int64(0)))
		Expect(buffer.Len()).To(Equal(0))
	})

	It("should write zero bytes up to the next boundary", func() {
		var buffer bytes.Buffer
		Expect(encoding.WritePadding(&buffer, 11)).To(Equal(int64(5)))
		Expect(buffer.Bytes()).To(Equal([]byte{0, 0, 0, 0, 0}))
	})
})
