package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.authID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.authID)
}

// Root runs the interactive command loop until "exit" or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to AuthKeeper CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "akcli %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: check, signin, signup, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: signin, signup, exit")
			}
		case "signup":
			a.SignUp(ctx)
		case "signin":
			a.SignIn(ctx)
		case "check":
			a.Check(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", parts[0])
		}

		if err != nil {
			return
		}
	}
}
