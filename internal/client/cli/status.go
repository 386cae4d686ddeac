package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/fingerprint"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

func (a *App) Price(_ context.Context) error {
	t := a.downloads.Prices()
	fmt.Fprintf(a.out, "CV: %d %s\n", t.CV, t.Currency)
	fmt.Fprintf(a.out, "Cover letter: %d %s\n", t.Cover, t.Currency)
	fmt.Fprintf(a.out, "Bundle: %d %s\n", t.Bundle, t.Currency)
	return nil
}

// Status shows, per product, whether the current form content is already
// paid for.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to see purchase status")
		return nil
	}

	rec, err := a.api.GetEntitlement(ctx)
	if err != nil {
		return err
	}

	cvHash := fingerprint.Hash(snapshot.CanonicalForCV(a.form))
	coverHash := fingerprint.Hash(snapshot.CanonicalForCover(a.form))

	for _, p := range []product.Product{product.CV, product.Cover, product.Bundle} {
		res := entitlement.Resolve(p, cvHash, coverHash, rec)
		state := "payment required"
		if res.IsFree {
			state = "paid, download is free"
		}
		fmt.Fprintf(a.out, "%s: %s\n", p.Label(), state)
	}
	return nil
}

// Push uploads the current form state to the account.
func (a *App) Push(ctx context.Context) error {
	if err := a.api.SaveSnapshot(ctx, a.form); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved to server")
	return nil
}

// Pull replaces the current form state with the stored one.
func (a *App) Pull(ctx context.Context) error {
	s, err := a.api.LoadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "No snapshot saved on the server yet")
			return nil
		}
		return err
	}
	a.form = s
	fmt.Fprintln(a.out, "Loaded snapshot from server")
	return nil
}
