package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filebox/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates an account.
//
// An email the server already rejected as taken is refused before the
// password prompt. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !a.auth.CanRegister(ctx, email) {
		a.sink.Error("Этот email уже зарегистрирован. Введите другой.")
		return nil
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.auth.Register(ctx, email, string(password))
}

// Login prompts for credentials and signs in. On success the file table is
// printed by the reload that follows.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.auth.Login(ctx, email, string(password))
}

func (a *App) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// Forget removes the saved credential and the blocked email from the local
// store.
func (a *App) Forget(ctx context.Context) error {
	if err := a.session.Forget(ctx); err != nil {
		a.log.Error(ctx, "forget session", "error", err)
		a.fail(err.Error())
		return err
	}
	a.auth.RefreshIdentity(ctx)
	a.sink.Success("Локальные данные удалены")
	return nil
}

// Me refreshes the identity from the server and prints it together with the
// expiry read from the credential.
func (a *App) Me(ctx context.Context) error {
	id := a.auth.RefreshIdentity(ctx)
	claims, err := a.session.Claims()
	if err != nil || claims.ExpiresAt.IsZero() {
		printlnFn(id)
		return nil
	}
	printlnFn(fmt.Sprintf("%s (до %s)", id, claims.ExpiresAt.Local().Format("2006-01-02 15:04")))
	return nil
}
