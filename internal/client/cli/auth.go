package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		return err
	}
	a.downloads.InvalidateEntitlements()
	fmt.Fprintln(a.out, "Registered and logged in as", a.session.Email())
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}
	a.downloads.InvalidateEntitlements()
	fmt.Fprintln(a.out, "Logged in as", a.session.Email())
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.session.Clear()
	a.downloads.InvalidateEntitlements()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
