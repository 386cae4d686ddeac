// Package pdfgen renders the CV as a PDF. The writer emits a minimal
// PDF 1.4 document: Helvetica text lines on A4 pages, no images, no
// compression. That is all the CV layout needs.
package pdfgen

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth  = 595.0 // A4 in points
	pageHeight = 842.0
	marginX    = 56.0
	marginTop  = 64.0
	marginBot  = 56.0
)

const (
	fontRegular = "F1"
	fontBold    = "F2"
)

// line is one positioned text run on a page.
type line struct {
	font string
	size float64
	x, y float64
	text string
}

// builder accumulates pages of text lines and serializes them. It tracks a
// cursor so layout code only thinks in "next line" terms.
type builder struct {
	pages [][]line
	y     float64
}

func newBuilder() *builder {
	b := &builder{}
	b.newPage()
	return b
}

func (b *builder) newPage() {
	b.pages = append(b.pages, nil)
	b.y = pageHeight - marginTop
}

// ensure starts a new page unless at least h points of vertical space
// remain on the current one.
func (b *builder) ensure(h float64) {
	if b.y-h < marginBot {
		b.newPage()
	}
}

func (b *builder) text(font string, size, x float64, s string) {
	n := len(b.pages) - 1
	b.pages[n] = append(b.pages[n], line{font: font, size: size, x: x, y: b.y, text: s})
}

func (b *builder) advance(h float64) { b.y -= h }

// escapeText escapes the characters with special meaning inside a PDF
// literal string. Non-ASCII bytes pass through as WinAnsi and render
// approximately, which is acceptable for names and addresses.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n', '\r', '\t':
			sb.WriteByte(' ')
		default:
			if r < 256 {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

func contentStream(lines []line) []byte {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "BT /%s %g Tf %g %g Td (%s) Tj ET\n",
			l.font, l.size, l.x, l.y, escapeText(l.text))
	}
	return []byte(sb.String())
}

// bytes serializes the accumulated pages into a complete PDF file.
//
// Object layout: 1 catalog, 2 pages root, 3 regular font, 4 bold font,
// then one page object and one content stream per page.
func (b *builder) bytes() []byte {
	var buf bytes.Buffer
	offsets := []int{0} // object 0 is the free-list head

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n")

	pageCount := len(b.pages)
	kids := make([]string, pageCount)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 5+i*2)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), pageCount))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>")

	for i, lines := range b.pages {
		content := contentStream(lines)
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Contents %d 0 R /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> >>",
			pageWidth, pageHeight, 6+i*2))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefOffset)

	return buf.Bytes()
}

// wrap splits s into lines at most width characters long, breaking on
// spaces. A crude measure, but Helvetica at CV sizes fits comfortably.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var out []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			out = append(out, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(out, cur)
}
