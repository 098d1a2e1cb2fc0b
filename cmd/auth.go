package main

import (
	"context"
	"fmt"

	"github.com/solace-cli/solace/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a full account on the backend.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	email := cmd.String("email")
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("registering account", "username", username)

	user, err := r.svcs.Auth.Register(ctx, email, username, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.writePlain("✓ Account created: %s\n", user.Username)
	r.writePlain("Run 'solace auth login' to sign in.\n")
	return nil
}

// AuthLogin signs in with username and password and stores the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("logging in", "username", username)

	if _, err := r.svcs.Auth.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.writePlain("✓ Signed in as %s\n", username)
	return nil
}

// AuthAnonymous creates and signs into an anonymous session.
func (r *Runner) AuthAnonymous(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	username := cmd.String("username")

	if username == "" {
		username = "guest-" + shared.GenerateID()[:8]
		user, err := r.svcs.Auth.RegisterAnonymous(ctx, username)
		if err != nil {
			return fmt.Errorf("anonymous registration failed: %w", err)
		}
		username = user.Username
	}

	if _, err := r.svcs.Auth.LoginAnonymous(ctx, username); err != nil {
		return fmt.Errorf("anonymous login failed: %w", err)
	}

	r.writePlain("✓ Signed in anonymously as %s\n", username)
	return nil
}

// AuthStatus shows the current session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	if !r.svcs.Auth.LoggedIn() {
		r.writePlain("Not signed in. Run 'solace auth login' or 'solace auth anonymous'.\n")
		return nil
	}

	user, err := r.svcs.Auth.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	r.writePlain("Signed in as %s", user.Username)
	if user.IsAnonymous {
		r.writePlain(" (anonymous)")
	}
	r.writePlain("\n")

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	return nil
}

// AuthLogout discards the stored session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	if err := r.svcs.Auth.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.writePlain("✓ Signed out\n")
	return nil
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:    "anonymous",
				Aliases: []string{"anon"},
				Usage:   "Sign in anonymously, creating a throwaway account if needed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Existing anonymous username to reuse",
					},
				},
				Action: r.AuthAnonymous,
			},
			{
				Name:  "status",
				Usage: "Show the current session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
		},
	}
}
