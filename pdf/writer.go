package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// writer is an append-only output buffer with an offset ledger.
//
// The ledger maps object ids to the byte position of their "N 0 obj"
// token. Positions come from the buffer itself, so writing and advancing
// the offset can never get out of step.
type writer struct {
	buf     bytes.Buffer
	offsets []int // index is the object id; -1 until recorded
}

func newWriter(objects int, sizeHint int) *writer {
	w := &writer{offsets: make([]int, objects+1)}
	for i := range w.offsets {
		w.offsets[i] = -1
	}
	w.offsets[0] = 0
	w.buf.Grow(sizeHint)
	return w
}

// Write appends p. It never fails.
func (w *writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *writer) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// pos returns the number of bytes written so far.
func (w *writer) pos() int {
	return w.buf.Len()
}

// beginObject records the current offset for id and writes the object
// header.
func (w *writer) beginObject(id int) {
	w.offsets[id] = w.pos()
	w.buf.WriteString(strconv.Itoa(id))
	w.buf.WriteString(" 0 obj\n")
}

func (w *writer) endObject() {
	w.buf.WriteString("endobj\n")
}

// stream writes a stream body wrapped in stream/endstream. The dictionary
// must already have been written with a /Length equal to len(data).
func (w *writer) stream(data []byte) {
	w.buf.WriteString("stream\n")
	w.buf.Write(data)
	w.buf.WriteString("\nendstream\n")
}

// finish writes the cross-reference table and trailer. Every object id
// must have been recorded exactly once.
func (w *writer) finish(root int) error {
	start := w.pos()
	total := len(w.offsets) - 1

	fmt.Fprintf(&w.buf, "xref\n0 %d\n", total+1)
	w.buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= total; id++ {
		off := w.offsets[id]
		if off < 0 {
			return fmt.Errorf("pdf: object %d was never written", id)
		}
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}

	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R >>\n", total+1, root)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF", start)
	return nil
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}
