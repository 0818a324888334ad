package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and attempts to create
// a new account. On success it prints "Success!" and returns nil.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// On success the access token is cached on the API client and attached
// to every subsequent call.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	fmt.Println("Logged in!")
	return nil
}

// Logout drops the cached access token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	return nil
}
