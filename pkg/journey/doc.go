// Package journey provides an implementation of an append-only journal of named binary records.
//
// The on-disk structure looks like this:
//
//   - A journal is a single file without a file header. Records follow one after the other, and every region of a
//     record starts on an 8 byte boundary, with zero bytes as padding.
//   - Each record is made up of the record name, a null terminator, the payload and a footer. The footer stores the
//     stamp, the name length, the payload length, the distance back to the start of the record and a magic number.
//   - The journal is read backwards. The footer at the end of the file describes the newest record, and its length
//     field leads to the record before it. The scan stops at the start of the file or at bytes which are not a
//     journey record, so a journal appended to the end of a foreign file stays readable.
//   - Appending the same name again shadows the earlier record. The table of contents keeps the newest record of
//     every name whose stamp falls into the requested window.
package journey
