// Package pdf writes minimal PDF 1.4 documents that show one JPEG image
// per page.
//
// The output contains no fonts, compression or incremental updates. Object
// numbers follow a fixed scheme: 1 is the catalog, 2 the page tree, and page
// i owns objects 3+3i (page), 4+3i (content stream) and 5+3i (image).
package pdf

import "strconv"

// Header is the first line of every document produced by Build.
const Header = "%PDF-1.4\n"

// PageImage is the image shown on one page of the output document.
type PageImage struct {
	// Name is the resource name of the image XObject, without the
	// leading slash. It must be unique within a document. If empty,
	// Build uses "Im" followed by the 0-based page index.
	Name string

	// Width and Height are the pixel dimensions of the image. They also
	// become the page size, one PDF unit per pixel.
	Width  int
	Height int

	// Data holds baseline JPEG bytes, RGB, 8 bits per component. They are
	// embedded as-is and are not validated by Build; see [InspectJPEG].
	Data []byte
}

// DefaultName returns the resource name used for page i when
// PageImage.Name is empty.
func DefaultName(i int) string {
	return "Im" + strconv.Itoa(i)
}

// Build serializes pages into a PDF 1.4 document with one page per image,
// in input order. The page MediaBox equals the image size in pixels.
//
// Build does not modify or retain pages. If any precondition fails, Build
// returns a nil slice and an error; it never returns a partial document.
// The output is fully determined by the input.
func Build(pages []PageImage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrMissingInput
	}
	names, err := resourceNames(pages)
	if err != nil {
		return nil, err
	}

	objects := layout(pages, names)

	size := len(Header) + 256*len(objects)
	for _, p := range pages {
		size += len(p.Data)
	}
	w := newWriter(len(objects), size)
	w.WriteString(Header)
	for _, obj := range objects {
		w.beginObject(obj.id())
		obj.encode(w)
		w.endObject()
	}
	if err := w.finish(catalogID); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// layout returns the document's objects in object-number order.
func layout(pages []PageImage, names []string) []object {
	objects := make([]object, 0, ObjectCount(len(pages)))

	kids := make([]int, len(pages))
	for i := range pages {
		kids[i] = PageObjectID(i)
	}
	objects = append(objects, catalog{}, pageTree{kids: kids})

	for i, p := range pages {
		id := PageObjectID(i)
		objects = append(objects,
			pageObject{
				num:       id,
				width:     p.Width,
				height:    p.Height,
				imageName: names[i],
				image:     id + 2,
				contents:  id + 1,
			},
			contentStream{
				num:       id + 1,
				width:     p.Width,
				height:    p.Height,
				imageName: names[i],
			},
			imageXObject{
				num:    id + 2,
				width:  p.Width,
				height: p.Height,
				data:   p.Data,
			},
		)
	}
	return objects
}

// resourceNames checks the per-page preconditions and returns the
// resource name of every page.
func resourceNames(pages []PageImage) ([]string, error) {
	names := make([]string, len(pages))
	seen := make(map[string]int, len(pages))
	for i, p := range pages {
		if p.Width <= 0 || p.Height <= 0 {
			return nil, &PageError{Index: i, Err: ErrInvalidDimensions}
		}
		if len(p.Data) == 0 {
			return nil, &PageError{Index: i, Err: ErrEmptyImage}
		}

		name := p.Name
		if name == "" {
			name = DefaultName(i)
		}
		if !validName(name) {
			return nil, &PageError{Index: i, Err: ErrInvalidName}
		}
		if _, dup := seen[name]; dup {
			return nil, &PageError{Index: i, Err: ErrDuplicateName}
		}
		seen[name] = i
		names[i] = name
	}
	return names, nil
}

// validName reports whether s can be written as a PDF name token without
// '#' escapes: printable ASCII other than delimiters.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x21 || c > 0x7e {
			return false
		}
		switch c {
		case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%', '#':
			return false
		}
	}
	return true
}
