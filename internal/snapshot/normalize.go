package snapshot

import "github.com/dmitrijs2005/cvpro/internal/product"

// Canonical projections. The invariant these types enforce: a field appears
// here only if mutating it changes the delivered document for the product.
// Record ids, suggestion buffers and the pasted job description never do.

type CanonicalExperience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
}

type CanonicalEducation struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
}

type CanonicalCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type CanonicalLanguage struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type CanonicalReference struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type CanonicalCoverLetter struct {
	Role           string `json:"role"`
	Company        string `json:"company"`
	CompanyAddress string `json:"companyAddress"`
	Text           string `json:"text"`
}

// CanonicalCV is the billable content of the CV product.
type CanonicalCV struct {
	PersonalInfo      PersonalInfo             `json:"personalInfo"`
	IncludeReferences bool                     `json:"includeReferences"`
	Skills            []string                 `json:"skills"`
	Hobbies           []string                 `json:"hobbies"`
	Experience        []CanonicalExperience    `json:"experience"`
	Education         []CanonicalEducation     `json:"education"`
	Certifications    []CanonicalCertification `json:"certifications"`
	Languages         []CanonicalLanguage      `json:"languages"`
	References        []CanonicalReference     `json:"references"`
}

// CanonicalCover is the billable content of the cover-letter product.
type CanonicalCover struct {
	PersonalInfo PersonalInfo         `json:"personalInfo"`
	CoverLetter  CanonicalCoverLetter `json:"coverLetter"`
}

// Normalize strips volatile fields from s and returns the canonical
// projection for p. Bundle has no canonical form of its own: callers
// fingerprint CV and Cover separately and derive bundle state from both.
// Passing Bundle returns nil.
func Normalize(s *FormSnapshot, p product.Product) any {
	switch p {
	case product.CV:
		return CanonicalForCV(s)
	case product.Cover:
		return CanonicalForCover(s)
	default:
		return nil
	}
}

// CanonicalForCV projects the CV-billable subset of s.
func CanonicalForCV(s *FormSnapshot) CanonicalCV {
	c := CanonicalCV{
		PersonalInfo:      s.PersonalInfo,
		IncludeReferences: s.IncludeReferences,
		Skills:            emptyIfNil(s.Skills),
		Hobbies:           emptyIfNil(s.Hobbies),
		Experience:        make([]CanonicalExperience, 0, len(s.Experience)),
		Education:         make([]CanonicalEducation, 0, len(s.Education)),
		Certifications:    make([]CanonicalCertification, 0, len(s.Certifications)),
		Languages:         make([]CanonicalLanguage, 0, len(s.Languages)),
		References:        make([]CanonicalReference, 0, len(s.References)),
	}

	for _, e := range s.Experience {
		c.Experience = append(c.Experience, CanonicalExperience{
			Title:            e.Title,
			Company:          e.Company,
			Location:         e.Location,
			StartDate:        e.StartDate,
			EndDate:          e.EndDate,
			Current:          e.Current,
			Responsibilities: emptyIfNil(e.Responsibilities),
		})
	}
	for _, e := range s.Education {
		c.Education = append(c.Education, CanonicalEducation{
			Degree:         e.Degree,
			Institution:    e.Institution,
			Location:       e.Location,
			GraduationDate: e.GraduationDate,
		})
	}
	for _, cert := range s.Certifications {
		c.Certifications = append(c.Certifications, CanonicalCertification{
			Name:   cert.Name,
			Issuer: cert.Issuer,
			Year:   cert.Year,
		})
	}
	for _, l := range s.Languages {
		c.Languages = append(c.Languages, CanonicalLanguage{
			Language:    l.Language,
			Proficiency: l.Proficiency,
		})
	}
	for _, r := range s.References {
		c.References = append(c.References, CanonicalReference{
			Name:         r.Name,
			Title:        r.Title,
			Organization: r.Organization,
			Phone:        r.Phone,
			Email:        r.Email,
		})
	}

	return c
}

// CanonicalForCover projects the cover-letter-billable subset of s. The
// pasted job description influences AI generation, not the delivered letter,
// so it is deliberately absent.
func CanonicalForCover(s *FormSnapshot) CanonicalCover {
	return CanonicalCover{
		PersonalInfo: s.PersonalInfo,
		CoverLetter: CanonicalCoverLetter{
			Role:           s.CoverLetterRole,
			Company:        s.CoverLetterCompany,
			CompanyAddress: s.CoverCompanyAddress,
			Text:           s.CoverLetterText,
		},
	}
}

// emptyIfNil keeps the canonical form stable between "never touched" and
// "emptied" list fields.
func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
