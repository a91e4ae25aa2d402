package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-writeups/internal/app"
	"github.com/MKhiriev/go-writeups/internal/service"
)

func newLoginCmd(deps *commandDeps) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}

			return deps.runApp(cmd, func(ctx context.Context, a appHandle) error {
				if err := a.Sessions().SignIn(ctx, email, pass); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", service.UserMessage(err))
					return err
				}
				state := a.Sessions().Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", state.User.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newSignupCmd(deps *commandDeps) *cobra.Command {
	var email, password, displayName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pass, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}

			return deps.runApp(cmd, func(ctx context.Context, a appHandle) error {
				if err := a.Sessions().SignUp(ctx, email, pass, displayName); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", service.UserMessage(err))
					return err
				}
				state := a.Sessions().Snapshot()
				if !state.SignedIn() {
					fmt.Fprintln(cmd.OutOrStdout(), app.MsgConfirmationPending)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", state.User.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.runApp(cmd, func(ctx context.Context, a appHandle) error {
				_ = a.Sessions().SignOut(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.runApp(cmd, func(_ context.Context, a appHandle) error {
				writeSessionState(cmd.OutOrStdout(), a.Sessions().Snapshot())
				return nil
			})
		},
	}
}

func writeSessionState(w io.Writer, state service.SessionState) {
	if !state.SignedIn() {
		fmt.Fprintln(w, "Not signed in")
		return
	}

	fmt.Fprintf(w, "%s <%s>\n", state.User.DisplayName(), state.User.Email)
	if !state.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "Session expires at %s\n", state.ExpiresAt.Local().Format(time.RFC1123))
	}
}

// passwordOrPrompt returns flagValue or asks for the password on the
// command's input. Terminal input is read without echo.
func passwordOrPrompt(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	defer fmt.Fprintln(cmd.ErrOrStderr())

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// fetchErrorLine turns a catalog failure into a one-line message.
func fetchErrorLine(err error) string {
	if errors.Is(err, service.ErrTransport) {
		return app.MsgServiceUnavailable
	}
	return err.Error()
}
