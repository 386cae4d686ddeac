package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cvpro/internal/download"
	"github.com/dmitrijs2005/cvpro/internal/product"
)

// writeFile is a test seam for artifact output.
var writeFile = func(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}

// Download runs one attempt for the named product and writes the delivered
// artifacts to the working directory.
func (a *App) Download(ctx context.Context, productName string) error {
	if !product.Valid(productName) {
		fmt.Fprintln(a.out, "Usage: download cv|cover|bundle")
		return nil
	}
	p := product.Parse(productName)

	res, err := a.downloads.Download(ctx, a.form, p)
	if err != nil {
		var missing *download.MissingFieldsError
		if errors.As(err, &missing) {
			fmt.Fprintln(a.out, "Some required fields are missing:")
			for _, f := range missing.Fields {
				fmt.Fprintln(a.out, "  -", f)
			}
			return nil
		}
		return err
	}

	switch res.State {
	case download.Cancelled:
		fmt.Fprintln(a.out, "Payment cancelled, nothing downloaded")
		return nil
	case download.Delivering:
		if res.Free {
			fmt.Fprintln(a.out, "Already paid for this content, downloading for free")
		}
	}

	for _, art := range res.Artifacts {
		if err := writeFile(art.FileName, art.Data); err != nil {
			return fmt.Errorf("writing %s: %w", art.FileName, err)
		}
		fmt.Fprintln(a.out, "Wrote", art.FileName)
	}
	return nil
}
