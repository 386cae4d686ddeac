package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// Show prints a compact summary of the current form state.
func (a *App) Show(_ context.Context) error {
	s := a.form
	p := s.PersonalInfo

	fmt.Fprintln(a.out, "Personal:")
	fmt.Fprintf(a.out, "  name: %s\n", p.FullName)
	fmt.Fprintf(a.out, "  profession: %s\n", p.Profession)
	fmt.Fprintf(a.out, "  contact: %s\n", strings.TrimSpace(p.Email+" "+p.Phone))
	fmt.Fprintf(a.out, "  location: %s\n", strings.TrimSpace(strings.Join(nonEmpty(p.Address, p.City, p.Country), ", ")))
	fmt.Fprintf(a.out, "Skills: %s\n", strings.Join(s.Skills, ", "))
	fmt.Fprintf(a.out, "Experience entries: %d\n", len(s.Experience))
	for i, e := range s.Experience {
		fmt.Fprintf(a.out, "  %d. %s at %s (%d responsibilities)\n", i+1, e.Title, e.Company, len(e.Responsibilities))
	}
	fmt.Fprintf(a.out, "Education entries: %d\n", len(s.Education))
	fmt.Fprintf(a.out, "Cover letter: role=%q company=%q text=%d chars\n",
		s.CoverLetterRole, s.CoverLetterCompany, len(s.CoverLetterText))
	return nil
}

// Edit runs an interactive prompt for one form section. Empty input keeps
// the current value.
func (a *App) Edit(ctx context.Context, section string) error {
	switch section {
	case "personal":
		return a.editPersonal()
	case "skills":
		return a.editList("Skills", &a.form.Skills)
	case "hobbies":
		return a.editList("Hobbies", &a.form.Hobbies)
	case "experience":
		return a.editExperience()
	case "cover":
		return a.editCover()
	default:
		fmt.Fprintln(a.out, "Usage: edit personal|skills|hobbies|experience|cover")
		return nil
	}
}

// prompt asks for one field, showing the current value, and leaves it
// unchanged on empty input.
func (a *App) prompt(label string, field *string) error {
	text, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, *field), a.out)
	if err != nil {
		return err
	}
	if text != "" {
		*field = text
	}
	return nil
}

func (a *App) editPersonal() error {
	p := &a.form.PersonalInfo
	fields := []struct {
		label string
		field *string
	}{
		{"Full name", &p.FullName},
		{"Email", &p.Email},
		{"Phone", &p.Phone},
		{"Profession", &p.Profession},
		{"Years of experience", &p.YearsExperience},
		{"Specialization", &p.Specialization},
		{"Address", &p.Address},
		{"City", &p.City},
		{"Country", &p.Country},
		{"Summary", &p.Summary},
	}
	for _, f := range fields {
		if err := a.prompt(f.label, f.field); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) editList(label string, items *[]string) error {
	text, err := GetSimpleText(a.reader, label+", comma-separated ["+strings.Join(*items, ", ")+"]", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	*items = nonEmpty(strings.Split(text, ",")...)
	return nil
}

func (a *App) editExperience() error {
	var e snapshot.Experience
	e.ID = int64(len(a.form.Experience) + 1)

	for _, f := range []struct {
		label string
		field *string
	}{
		{"Job title", &e.Title},
		{"Company", &e.Company},
		{"Location", &e.Location},
		{"Start date", &e.StartDate},
		{"End date (empty if current)", &e.EndDate},
	} {
		if err := a.prompt(f.label, f.field); err != nil {
			return err
		}
	}
	e.Current = e.EndDate == ""

	resp, err := GetMultiline(a.reader, "Responsibilities, one per line", a.out)
	if err != nil {
		return err
	}
	if resp != "" {
		e.Responsibilities = strings.Split(resp, "\n")
	}

	a.form.Experience = append(a.form.Experience, e)
	fmt.Fprintf(a.out, "Added experience entry %d\n", len(a.form.Experience))
	return nil
}

func (a *App) editCover() error {
	s := a.form
	for _, f := range []struct {
		label string
		field *string
	}{
		{"Role applied for", &s.CoverLetterRole},
		{"Company", &s.CoverLetterCompany},
		{"Company address", &s.CoverCompanyAddress},
	} {
		if err := a.prompt(f.label, f.field); err != nil {
			return err
		}
	}

	text, err := GetMultiline(a.reader, "Letter text", a.out)
	if err != nil {
		return err
	}
	if text != "" {
		s.CoverLetterText = text
	}
	return nil
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
