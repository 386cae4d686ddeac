package download

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// MissingFieldsError names the required fields a download attempt lacked.
// It matches common.ErrorValidation under errors.Is.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return common.ErrorValidation }

// Validate checks the minimum required fields for p before any network or
// payment action. Cover-letter products additionally require both address
// blocks: the delivered document is a formatted letter and looks broken
// without them.
func Validate(s *snapshot.FormSnapshot, p product.Product) error {
	var missing []string

	blank := func(v string) bool { return strings.TrimSpace(v) == "" }

	if blank(s.PersonalInfo.FullName) {
		missing = append(missing, "full name")
	}

	if p.IncludesCV() {
		if blank(s.PersonalInfo.Email) {
			missing = append(missing, "email")
		}
		if blank(s.PersonalInfo.Phone) {
			missing = append(missing, "phone")
		}
		if blank(s.PersonalInfo.Profession) {
			missing = append(missing, "profession")
		}
	}

	if p.IncludesCover() {
		if blank(s.CoverLetterText) {
			missing = append(missing, "cover letter text")
		}
		if blank(s.PersonalInfo.Address) {
			missing = append(missing, "your address")
		}
		if blank(s.PersonalInfo.City) {
			missing = append(missing, "your town/city")
		}
		if blank(s.PersonalInfo.Country) {
			missing = append(missing, "your country")
		}
		if blank(s.CoverCompanyAddress) {
			missing = append(missing, "company address")
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
