// Package snapshot defines the form data model and its canonical, billable
// projections. A FormSnapshot is everything the user typed, including
// volatile editing state; a canonical snapshot is the subset that determines
// the delivered document for one product.
package snapshot

// PersonalInfo is the applicant block shared by the CV and the cover letter.
type PersonalInfo struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Profession      string `json:"profession"`
	YearsExperience string `json:"yearsExperience"`
	Specialization  string `json:"specialization"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Summary         string `json:"summary"`
	LinkedinURL     string `json:"linkedinUrl"`
	GithubURL       string `json:"githubUrl"`
}

// Experience is one work-history entry. ID and Suggestions are editing
// state: ID identifies the entry across edits, Suggestions buffers
// AI-suggested responsibilities the user has not accepted yet. Neither may
// influence billing.
type Experience struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
	Suggestions      []string `json:"suggestions,omitempty"`
}

type Education struct {
	ID             int64  `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
}

type Certification struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type LanguageSkill struct {
	ID          int64  `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Reference struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// FormSnapshot is the complete in-memory form state. It is owned by the
// active editing session and mutated on every field edit.
//
// JobDescription is the pasted posting used only as AI generation input; it
// never appears in a delivered document and therefore never in a canonical
// snapshot.
type FormSnapshot struct {
	PersonalInfo      PersonalInfo    `json:"personalInfo"`
	IncludeReferences bool            `json:"includeReferences"`
	Skills            []string        `json:"skills"`
	Hobbies           []string        `json:"hobbies"`
	Experience        []Experience    `json:"experience"`
	Education         []Education     `json:"education"`
	Certifications    []Certification `json:"certifications"`
	Languages         []LanguageSkill `json:"languages"`
	References        []Reference     `json:"references"`

	CoverLetterRole     string `json:"coverLetterRole"`
	CoverLetterCompany  string `json:"coverLetterCompany"`
	CoverCompanyAddress string `json:"coverCompanyAddress"`
	CoverLetterText     string `json:"coverLetterText"`
	JobDescription      string `json:"jobDescription,omitempty"`
}
