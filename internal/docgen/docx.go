// Package docgen renders the cover letter as a Word document. A .docx file
// is a zip archive with a fixed skeleton; only word/document.xml carries
// content, so the package writes the three required parts by hand.
package docgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

const MIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// splitAddress turns a free-form address into display lines. Multi-line
// input is taken as typed; a single line is split on commas, the way most
// users write "Company House, Cairo Road, Lusaka".
func splitAddress(addr string) []string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}

	var parts []string
	if strings.Contains(addr, "\n") {
		parts = strings.Split(addr, "\n")
	} else {
		parts = strings.Split(addr, ",")
	}

	var lines []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// CoverLetterDocx renders the letter for the given snapshot. now supplies
// the letter date; pass time.Now in production.
func CoverLetterDocx(s *snapshot.FormSnapshot, now func() time.Time) ([]byte, error) {
	if now == nil {
		now = time.Now
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	// sender block
	writeParagraph(&doc, s.PersonalInfo.FullName, true)
	for _, line := range []string{s.PersonalInfo.Address, s.PersonalInfo.City, s.PersonalInfo.Country, s.PersonalInfo.Phone, s.PersonalInfo.Email} {
		if strings.TrimSpace(line) != "" {
			writeParagraph(&doc, line, false)
		}
	}
	writeParagraph(&doc, "", false)

	writeParagraph(&doc, now().Format("2 January 2006"), false)
	writeParagraph(&doc, "", false)

	// recipient block
	if s.CoverLetterCompany != "" {
		writeParagraph(&doc, s.CoverLetterCompany, false)
	}
	for _, line := range splitAddress(s.CoverCompanyAddress) {
		writeParagraph(&doc, line, false)
	}
	writeParagraph(&doc, "", false)

	if s.CoverLetterRole != "" {
		writeParagraph(&doc, fmt.Sprintf("Re: Application for %s", s.CoverLetterRole), true)
		writeParagraph(&doc, "", false)
	}

	// the letter text is used as typed, paragraph per line group
	text := strings.TrimSpace(s.CoverLetterText)
	if !strings.HasPrefix(text, "Dear") {
		writeParagraph(&doc, "Dear Hiring Manager,", false)
		writeParagraph(&doc, "", false)
	}
	for _, para := range strings.Split(text, "\n\n") {
		writeParagraph(&doc, strings.ReplaceAll(para, "\n", " "), false)
		writeParagraph(&doc, "", false)
	}

	writeParagraph(&doc, "Yours sincerely,", false)
	writeParagraph(&doc, s.PersonalInfo.FullName, false)

	doc.WriteString(`</w:body></w:document>`)

	return packDocx(doc.String())
}

func writeParagraph(b *strings.Builder, text string, bold bool) {
	b.WriteString(`<w:p><w:r>`)
	if bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func packDocx(documentXML string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML},
	}

	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
