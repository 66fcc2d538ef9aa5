// Package cli implements the interactive terminal frontend for the
// AuthKeeper HTTP API.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/client"
)

type App struct {
	client *client.Client
	reader *bufio.Reader
	out    io.Writer

	// session state from the last successful signin/signup
	token  string
	authID string
}

func NewApp(c *client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		client: c,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) promptCredentials() (string, string, error) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return email, string(password), nil
}

func (a *App) SignUp(ctx context.Context) {
	email, password, err := a.promptCredentials()
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	res, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "signup failed: %v\n", err)
		return
	}

	a.token = res.Token
	a.authID = res.AuthID
	fmt.Fprintf(a.out, "Signed up. authId: %s\n", res.AuthID)
}

func (a *App) SignIn(ctx context.Context) {
	email, password, err := a.promptCredentials()
	if err != nil {
		fmt.Fprintf(a.out, "input error: %v\n", err)
		return
	}

	res, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "signin failed: %v\n", err)
		return
	}

	a.token = res.Token
	a.authID = res.AuthID
	fmt.Fprintf(a.out, "Signed in. authId: %s\n", res.AuthID)
}

func (a *App) Check(ctx context.Context) {
	if a.token == "" {
		fmt.Fprintln(a.out, "No token yet, sign in first")
		return
	}

	res, err := a.client.Check(ctx, a.token)
	if err != nil {
		fmt.Fprintf(a.out, "check failed: %v\n", err)
		return
	}

	if res.Valid {
		fmt.Fprintf(a.out, "Token is valid for another %d seconds\n", res.ExpiresIn)
	} else {
		fmt.Fprintf(a.out, "Token is not valid: %s\n", res.Message)
	}
}
