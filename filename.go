package webclip

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxTitleRunes = 100

// ClipFilename returns the file name for the n-th clip of a page titled
// title: the title with characters that are illegal in file names replaced
// by '-', cut to 100 characters, followed by a three digit counter and ext.
//
//	ClipFilename("Go: Docs", 7, ".png") == "Go- Docs-007.png"
func ClipFilename(title string, n int, ext string) string {
	title = strings.TrimSpace(norm.NFC.String(title))
	if title == "" {
		title = "clip"
	}

	var sb strings.Builder
	count := 0
	for _, r := range title {
		if count == maxTitleRunes {
			break
		}
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r), unicode.IsControl(r):
			sb.WriteByte('-')
		default:
			sb.WriteRune(r)
		}
		count++
	}
	return fmt.Sprintf("%s-%03d%s", sb.String(), n, ext)
}

// PDFFilename returns the default name of a document generated at t.
func PDFFilename(t time.Time) string {
	return fmt.Sprintf("WebClip-%d.pdf", t.UnixMilli())
}
