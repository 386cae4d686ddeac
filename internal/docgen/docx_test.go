package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *snapshot.FormSnapshot {
	return &snapshot.FormSnapshot{
		PersonalInfo: snapshot.PersonalInfo{
			FullName: "Chanda Mwamba",
			Email:    "chanda@example.com",
			Phone:    "+260971234567",
			Address:  "Plot 12, Freedom Way",
			City:     "Lusaka",
			Country:  "Zambia",
		},
		CoverLetterRole:     "Accountant",
		CoverLetterCompany:  "Zamtel",
		CoverCompanyAddress: "Zamtel House, Church Road, Lusaka",
		CoverLetterText:     "I am writing to apply for the Accountant role.\n\nI have five years of experience.",
	}
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(body)
		}
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func TestCoverLetterDocxIsValidArchive(t *testing.T) {
	data, err := CoverLetterDocx(testSnapshot(), fixedNow)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["[Content_Types].xml"])
	assert.True(t, names["_rels/.rels"])
	assert.True(t, names["word/document.xml"])
}

func TestCoverLetterDocxContent(t *testing.T) {
	data, err := CoverLetterDocx(testSnapshot(), fixedNow)
	require.NoError(t, err)

	doc := documentXML(t, data)
	assert.Contains(t, doc, "Chanda Mwamba")
	assert.Contains(t, doc, "14 March 2026")
	assert.Contains(t, doc, "Re: Application for Accountant")
	assert.Contains(t, doc, "Dear Hiring Manager,")
	assert.Contains(t, doc, "I have five years of experience.")
	assert.Contains(t, doc, "Yours sincerely,")
}

func TestCoverLetterDocxSplitsCompanyAddressOnCommas(t *testing.T) {
	data, err := CoverLetterDocx(testSnapshot(), fixedNow)
	require.NoError(t, err)

	doc := documentXML(t, data)
	// each comma-separated part becomes its own paragraph
	assert.Contains(t, doc, ">Zamtel House<")
	assert.Contains(t, doc, ">Church Road<")
	assert.Contains(t, doc, ">Lusaka<")
}

func TestCoverLetterDocxKeepsTypedAddressLines(t *testing.T) {
	s := testSnapshot()
	s.CoverCompanyAddress = "Zamtel House, Floor 3\nChurch Road"

	data, err := CoverLetterDocx(s, fixedNow)
	require.NoError(t, err)

	doc := documentXML(t, data)
	// newline input wins over comma splitting
	assert.Contains(t, doc, ">Zamtel House, Floor 3<")
	assert.Contains(t, doc, ">Church Road<")
}

func TestCoverLetterDocxSkipsGreetingWhenTyped(t *testing.T) {
	s := testSnapshot()
	s.CoverLetterText = "Dear Ms Banda,\n\nI am writing to apply."

	data, err := CoverLetterDocx(s, fixedNow)
	require.NoError(t, err)

	doc := documentXML(t, data)
	assert.Contains(t, doc, "Dear Ms Banda,")
	assert.NotContains(t, doc, "Dear Hiring Manager,")
}

func TestCoverLetterDocxEscapesXML(t *testing.T) {
	s := testSnapshot()
	s.CoverLetterText = "I improved <throughput> & quality."

	data, err := CoverLetterDocx(s, fixedNow)
	require.NoError(t, err)

	doc := documentXML(t, data)
	assert.Contains(t, doc, "&lt;throughput&gt; &amp; quality.")
	assert.NotContains(t, doc, "<throughput>")
}

func TestSplitAddress(t *testing.T) {
	assert.Nil(t, splitAddress("  "))
	assert.Equal(t, []string{"A", "B"}, splitAddress("A, B"))
	assert.Equal(t, []string{"A, B", "C"}, splitAddress("A, B\nC"))
}
