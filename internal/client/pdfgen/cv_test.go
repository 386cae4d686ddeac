package pdfgen

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *snapshot.FormSnapshot {
	s := &snapshot.FormSnapshot{}
	s.PersonalInfo.FullName = "Chanda Mwamba"
	s.PersonalInfo.Profession = "Accountant"
	s.PersonalInfo.Specialization = "Taxation"
	s.PersonalInfo.YearsExperience = "5"
	s.PersonalInfo.Email = "chanda@example.com"
	s.PersonalInfo.Phone = "+260 97 1234567"
	s.PersonalInfo.City = "Lusaka"
	s.PersonalInfo.Country = "Zambia"
	s.PersonalInfo.Summary = "Detail-oriented accountant with five years of experience in tax compliance."
	s.Skills = []string{"Tax returns", "Payroll (monthly)"}
	s.Experience = []snapshot.Experience{{
		Title:            "Senior Accountant",
		Company:          "Zanaco",
		Location:         "Lusaka",
		StartDate:        "2021-03",
		Current:          true,
		Responsibilities: []string{"Prepared statutory tax filings"},
	}}
	s.Education = []snapshot.Education{{
		Degree:         "BSc Accounting",
		Institution:    "University of Zambia",
		GraduationDate: "2019",
	}}
	return s
}

func TestCVIsWellFormedPDF(t *testing.T) {
	data := CV(testSnapshot())

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(out, "%%EOF\n"))
	assert.Contains(t, out, "/Type /Catalog")
	assert.Contains(t, out, "/Type /Pages")
	assert.Contains(t, out, "startxref")
}

func TestCVContainsContent(t *testing.T) {
	out := string(CV(testSnapshot()))

	assert.Contains(t, out, "(Chanda Mwamba)")
	assert.Contains(t, out, "Accountant - Taxation \\(5 years\\)")
	assert.Contains(t, out, "PROFESSIONAL SUMMARY")
	assert.Contains(t, out, "WORK EXPERIENCE")
	assert.Contains(t, out, "Senior Accountant, Zanaco")
	assert.Contains(t, out, "- Prepared statutory tax filings")
	assert.Contains(t, out, "EDUCATION")
	// Parens in user content must be escaped in the literal string.
	assert.Contains(t, out, "Payroll \\(monthly\\)")
}

func TestCVOmitsEmptySections(t *testing.T) {
	s := &snapshot.FormSnapshot{}
	s.PersonalInfo.FullName = "Chanda Mwamba"
	out := string(CV(s))

	assert.NotContains(t, out, "WORK EXPERIENCE")
	assert.NotContains(t, out, "EDUCATION")
	assert.NotContains(t, out, "REFERENCES")
}

func TestCVReferencesOnRequest(t *testing.T) {
	s := testSnapshot()
	s.IncludeReferences = true
	out := string(CV(s))

	assert.Contains(t, out, "REFERENCES")
	assert.Contains(t, out, "Available on request.")
}

func TestCVPaginatesLongContent(t *testing.T) {
	s := testSnapshot()
	for i := 0; i < 40; i++ {
		s.Experience = append(s.Experience, snapshot.Experience{
			Title:            "Accountant",
			Company:          "Employer",
			StartDate:        "2015",
			EndDate:          "2016",
			Responsibilities: []string{"Reconciled ledgers", "Filed VAT returns"},
		})
	}
	out := string(CV(s))

	require.Contains(t, out, "/Count ")
	i := strings.Index(out, "/Count ")
	assert.NotEqual(t, "/Count 1", out[i:i+8])
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 9)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)
	assert.Nil(t, wrap("   ", 10))
}
