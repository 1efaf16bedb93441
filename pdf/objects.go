package pdf

import (
	"strconv"
	"strings"
)

// Fixed object numbers.
const (
	catalogID  = 1
	pageTreeID = 2
)

// PageObjectID returns the object number of the page object for the
// 0-based page index i. The content stream and the image XObject of the
// same page follow at PageObjectID(i)+1 and PageObjectID(i)+2.
func PageObjectID(i int) int {
	return 3 + i*3
}

// ObjectCount returns the number of indirect objects in a document with
// n pages, not counting the free-list head at object 0.
func ObjectCount(n int) int {
	return 2 + n*3
}

// object is one of the indirect objects a document is made of.
type object interface {
	id() int
	encode(w *writer)
}

type catalog struct{}

func (catalog) id() int { return catalogID }

func (catalog) encode(w *writer) {
	w.WriteString("<< /Type /Catalog /Pages ")
	w.WriteString(ref(pageTreeID))
	w.WriteString(" >>\n")
}

type pageTree struct {
	kids []int
}

func (pageTree) id() int { return pageTreeID }

func (t pageTree) encode(w *writer) {
	refs := make([]string, len(t.kids))
	for i, kid := range t.kids {
		refs[i] = ref(kid)
	}
	w.WriteString("<< /Type /Pages /Count ")
	w.WriteString(strconv.Itoa(len(t.kids)))
	w.WriteString(" /Kids [")
	w.WriteString(strings.Join(refs, " "))
	w.WriteString("] >>\n")
}

type pageObject struct {
	num           int
	width, height int
	imageName     string
	image         int
	contents      int
}

func (p pageObject) id() int { return p.num }

func (p pageObject) encode(w *writer) {
	w.WriteString("<< /Type /Page /Parent ")
	w.WriteString(ref(pageTreeID))
	w.WriteString(" /MediaBox [0 0 ")
	w.WriteString(strconv.Itoa(p.width))
	w.WriteString(" ")
	w.WriteString(strconv.Itoa(p.height))
	w.WriteString("] /Resources << /XObject << /")
	w.WriteString(p.imageName)
	w.WriteString(" ")
	w.WriteString(ref(p.image))
	w.WriteString(" >> >> /Contents ")
	w.WriteString(ref(p.contents))
	w.WriteString(" >>\n")
}

// contentStream paints one image XObject over the whole page.
type contentStream struct {
	num           int
	width, height int
	imageName     string
}

func (c contentStream) id() int { return c.num }

// program returns the content stream operators: save state, scale the
// unit square to the page, paint the image, restore state.
func (c contentStream) program() []byte {
	return []byte("q\n" +
		strconv.Itoa(c.width) + " 0 0 " + strconv.Itoa(c.height) + " 0 0 cm\n" +
		"/" + c.imageName + " Do\n" +
		"Q\n")
}

func (c contentStream) encode(w *writer) {
	body := c.program()
	w.WriteString("<< /Length ")
	w.WriteString(strconv.Itoa(len(body)))
	w.WriteString(" >>\n")
	w.stream(body)
}

// imageXObject embeds JPEG data verbatim under /DCTDecode.
type imageXObject struct {
	num           int
	width, height int
	data          []byte
}

func (x imageXObject) id() int { return x.num }

func (x imageXObject) encode(w *writer) {
	w.WriteString("<< /Type /XObject /Subtype /Image /Width ")
	w.WriteString(strconv.Itoa(x.width))
	w.WriteString(" /Height ")
	w.WriteString(strconv.Itoa(x.height))
	w.WriteString(" /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length ")
	w.WriteString(strconv.Itoa(len(x.data)))
	w.WriteString(" >>\n")
	w.stream(x.data)
}

func ref(id int) string {
	return strconv.Itoa(id) + " 0 R"
}
