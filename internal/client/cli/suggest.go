package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Suggest asks the backend for AI-generated responsibility bullets for one
// experience entry and stages them on the entry for review.
func (a *App) Suggest(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to use suggestions")
		return nil
	}
	if len(a.form.Experience) == 0 {
		fmt.Fprintln(a.out, "Add an experience entry first (edit experience)")
		return nil
	}

	idx := 0
	if len(a.form.Experience) > 1 {
		text, err := GetSimpleText(a.reader, fmt.Sprintf("Entry number (1-%d)", len(a.form.Experience)), a.out)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > len(a.form.Experience) {
			fmt.Fprintln(a.out, "Invalid entry number")
			return nil
		}
		idx = n - 1
	}
	e := &a.form.Experience[idx]

	suggestions, err := a.api.Suggest(ctx, e.Title, e.Company, e.Responsibilities, a.form.JobDescription)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(a.out, "No suggestions returned")
		return nil
	}

	fmt.Fprintln(a.out, "Suggestions:")
	for _, s := range suggestions {
		fmt.Fprintln(a.out, "  -", s)
	}
	e.Suggestions = suggestions

	answer, err := GetSimpleText(a.reader, "Accept all? (y/n)", a.out)
	if err != nil {
		return err
	}
	if answer == "y" || answer == "yes" {
		e.Responsibilities = append(e.Responsibilities, suggestions...)
		e.Suggestions = nil
		fmt.Fprintln(a.out, "Added to responsibilities")
	}
	return nil
}
