package pdf

import (
	"strings"
	"testing"
)

func TestWriter_RecordsOffsets(t *testing.T) {
	w := newWriter(2, 0)
	w.WriteString(Header)
	w.beginObject(1)
	w.WriteString("<< >>\n")
	w.endObject()
	w.beginObject(2)
	w.WriteString("<< /Length 3 >>\n")
	w.stream([]byte("abc"))
	w.endObject()

	if w.offsets[1] != len(Header) {
		t.Errorf("offset of object 1 = %d, want %d", w.offsets[1], len(Header))
	}
	if got := string(w.Bytes()[w.offsets[2]:]); !strings.HasPrefix(got, "2 0 obj\n") {
		t.Errorf("offset of object 2 points at %q", got)
	}

	if err := w.finish(1); err != nil {
		t.Fatalf("finish: %v", err)
	}
	want := Header +
		"1 0 obj\n<< >>\nendobj\n" +
		"2 0 obj\n<< /Length 3 >>\nstream\nabc\nendstream\nendobj\n" +
		"xref\n0 3\n" +
		"0000000000 65535 f \n" +
		"0000000009 00000 n \n" +
		"0000000030 00000 n \n" +
		"trailer\n<< /Size 3 /Root 1 0 R >>\n" +
		"startxref\n82\n%%EOF"
	if got := string(w.Bytes()); got != want {
		t.Errorf("output:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriter_MissingObject(t *testing.T) {
	w := newWriter(3, 0)
	w.beginObject(1)
	w.endObject()
	w.beginObject(3)
	w.endObject()
	if err := w.finish(1); err == nil {
		t.Error("finish succeeded with object 2 never written")
	}
}

func TestWriter_EntryWidth(t *testing.T) {
	w := newWriter(1, 0)
	w.beginObject(1)
	w.endObject()
	if err := w.finish(1); err != nil {
		t.Fatal(err)
	}
	out := string(w.Bytes())
	start := strings.Index(out, "xref\n0 2\n") + len("xref\n0 2\n")
	end := strings.Index(out, "trailer\n")
	if end-start != 2*20 {
		t.Errorf("xref entries take %d bytes, want 40", end-start)
	}
}
