package pdfgen

import (
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// MIME is the content type of a generated CV.
const MIME = "application/pdf"

const bodyWrap = 88

// CV renders the snapshot as a complete PDF document.
func CV(s *snapshot.FormSnapshot) []byte {
	b := newBuilder()

	writeHeader(b, s)
	writeSummary(b, s)
	writeSkills(b, "Skills", s.Skills)
	writeExperience(b, s)
	writeEducation(b, s)
	writeCertifications(b, s)
	writeLanguages(b, s)
	writeSkills(b, "Hobbies & Interests", s.Hobbies)
	writeReferences(b, s)

	return b.bytes()
}

func writeHeader(b *builder, s *snapshot.FormSnapshot) {
	p := s.PersonalInfo

	b.text(fontBold, 20, marginX, p.FullName)
	b.advance(18)
	if title := headline(p); title != "" {
		b.text(fontRegular, 12, marginX, title)
		b.advance(14)
	}
	if contact := joinNonEmpty(" | ", p.Phone, p.Email, p.LinkedinURL, p.GithubURL); contact != "" {
		b.text(fontRegular, 9, marginX, contact)
		b.advance(12)
	}
	if loc := joinNonEmpty(", ", p.Address, p.City, p.Country); loc != "" {
		b.text(fontRegular, 9, marginX, loc)
		b.advance(12)
	}
	b.advance(8)
}

// headline joins the profession with specialization and experience, e.g.
// "Accountant - Taxation (5 years)".
func headline(p snapshot.PersonalInfo) string {
	title := p.Profession
	if p.Specialization != "" {
		title = joinNonEmpty(" - ", title, p.Specialization)
	}
	if p.YearsExperience != "" && title != "" {
		title += " (" + p.YearsExperience + " years)"
	}
	return title
}

func sectionTitle(b *builder, title string) {
	b.ensure(40)
	b.advance(10)
	b.text(fontBold, 12, marginX, strings.ToUpper(title))
	b.advance(16)
}

func bodyLines(b *builder, indent float64, text string) {
	for _, l := range wrap(text, bodyWrap) {
		b.ensure(12)
		b.text(fontRegular, 10, marginX+indent, l)
		b.advance(12)
	}
}

func writeSummary(b *builder, s *snapshot.FormSnapshot) {
	if strings.TrimSpace(s.PersonalInfo.Summary) == "" {
		return
	}
	sectionTitle(b, "Professional Summary")
	bodyLines(b, 0, s.PersonalInfo.Summary)
}

func writeSkills(b *builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sectionTitle(b, title)
	bodyLines(b, 0, strings.Join(items, ", "))
}

func writeExperience(b *builder, s *snapshot.FormSnapshot) {
	if len(s.Experience) == 0 {
		return
	}
	sectionTitle(b, "Work Experience")
	for _, e := range s.Experience {
		b.ensure(40)
		b.text(fontBold, 11, marginX, joinNonEmpty(", ", e.Title, e.Company))
		b.advance(13)
		if meta := joinNonEmpty(" | ", e.Location, dateRange(e)); meta != "" {
			b.text(fontRegular, 9, marginX, meta)
			b.advance(12)
		}
		for _, r := range e.Responsibilities {
			if strings.TrimSpace(r) == "" {
				continue
			}
			lines := wrap(r, bodyWrap-2)
			for i, l := range lines {
				b.ensure(12)
				if i == 0 {
					l = "- " + l
				} else {
					l = "  " + l
				}
				b.text(fontRegular, 10, marginX+8, l)
				b.advance(12)
			}
		}
		b.advance(6)
	}
}

func dateRange(e snapshot.Experience) string {
	end := e.EndDate
	if e.Current {
		end = "Present"
	}
	return joinNonEmpty(" - ", e.StartDate, end)
}

func writeEducation(b *builder, s *snapshot.FormSnapshot) {
	if len(s.Education) == 0 {
		return
	}
	sectionTitle(b, "Education")
	for _, e := range s.Education {
		b.ensure(28)
		b.text(fontBold, 11, marginX, e.Degree)
		b.advance(13)
		if meta := joinNonEmpty(" | ", joinNonEmpty(", ", e.Institution, e.Location), e.GraduationDate); meta != "" {
			b.text(fontRegular, 9, marginX, meta)
			b.advance(12)
		}
		b.advance(4)
	}
}

func writeCertifications(b *builder, s *snapshot.FormSnapshot) {
	if len(s.Certifications) == 0 {
		return
	}
	sectionTitle(b, "Certifications")
	for _, c := range s.Certifications {
		b.ensure(12)
		b.text(fontRegular, 10, marginX, joinNonEmpty(" - ", c.Name, joinNonEmpty(", ", c.Issuer, c.Year)))
		b.advance(12)
	}
}

func writeLanguages(b *builder, s *snapshot.FormSnapshot) {
	if len(s.Languages) == 0 {
		return
	}
	sectionTitle(b, "Languages")
	parts := make([]string, 0, len(s.Languages))
	for _, l := range s.Languages {
		parts = append(parts, joinNonEmpty(" - ", l.Language, l.Proficiency))
	}
	bodyLines(b, 0, strings.Join(parts, "; "))
}

func writeReferences(b *builder, s *snapshot.FormSnapshot) {
	if !s.IncludeReferences {
		return
	}
	sectionTitle(b, "References")
	if len(s.References) == 0 {
		bodyLines(b, 0, "Available on request.")
		return
	}
	for _, r := range s.References {
		b.ensure(28)
		b.text(fontBold, 10, marginX, joinNonEmpty(" - ", r.Name, joinNonEmpty(", ", r.Title, r.Organization)))
		b.advance(12)
		if contact := joinNonEmpty(" | ", r.Phone, r.Email); contact != "" {
			b.text(fontRegular, 9, marginX, contact)
			b.advance(12)
		}
		b.advance(4)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
