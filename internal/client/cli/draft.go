package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/common"
)

// Draft dispatches the local draft subcommands: save, load, list, delete.
// Drafts live in the client database and work without an account.
func (a *App) Draft(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: draft save|load|list|delete [name]")
		return nil
	}

	name := "default"
	if len(args) > 1 {
		name = args[1]
	}

	switch args[0] {
	case "save":
		if err := a.drafts.Save(ctx, name, a.form); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Draft %q saved\n", name)
		return nil

	case "load":
		d, err := a.drafts.Get(ctx, name)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				fmt.Fprintf(a.out, "No draft named %q\n", name)
				return nil
			}
			return err
		}
		a.form = d.Snapshot
		fmt.Fprintf(a.out, "Draft %q loaded\n", name)
		return nil

	case "list":
		infos, err := a.drafts.List(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(a.out, "No drafts")
			return nil
		}
		for _, info := range infos {
			fmt.Fprintf(a.out, "%s\t%s\n", info.Name, info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil

	case "delete":
		if err := a.drafts.Delete(ctx, name); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				fmt.Fprintf(a.out, "No draft named %q\n", name)
				return nil
			}
			return err
		}
		fmt.Fprintf(a.out, "Draft %q deleted\n", name)
		return nil

	default:
		fmt.Fprintln(a.out, "Usage: draft save|load|list|delete [name]")
		return nil
	}
}
