package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/pkg/api"
	"github.com/oakwood-commons/roadtrip/pkg/model"
	"github.com/oakwood-commons/roadtrip/pkg/tokenstore"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		req           model.RegisterRequest
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.password(passwordStdin)
			if err != nil {
				return err
			}
			confirm := password
			if !passwordStdin {
				if confirm, err = a.readPassword("Confirm password: "); err != nil {
					return err
				}
			}
			if password != confirm {
				return usageErrorf("passwords do not match")
			}
			req.Password, req.PasswordConfirm = password, confirm

			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			resp, err := c.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), resp.User, "user", nil)
			}
			a.notifier.Success(fmt.Sprintf("Welcome, %s! You are now logged in.", resp.User.DisplayName()))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Username, "username", "", "username")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store credentials",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.password(passwordStdin)
			if err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			resp, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) {
					return reportedError{err}
				}
				return fmt.Errorf("login: %w", err)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), resp.User, "user", nil)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget stored credentials",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			return c.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.newStore(a.cfg)
			if err != nil {
				return err
			}
			creds, err := tokenstore.Load(store)
			if err != nil {
				return err
			}
			if creds.AccessToken == "" && creds.RefreshToken == "" {
				return errors.New("not logged in; run 'roadtrip login'")
			}
			c, err := a.client(cmd.Context(), false)
			if err != nil {
				return err
			}
			user, err := c.Me(cmd.Context())
			if err != nil {
				if api.IsKind(err, api.KindAuth) {
					return errors.New("session expired; run 'roadtrip login'")
				}
				return fmt.Errorf("whoami: %w", err)
			}
			// Re-read: Me may have refreshed the access token.
			if refreshed, err := tokenstore.Load(store); err == nil {
				creds = refreshed
			}
			var expires time.Time
			if exp, ok := api.TokenExpiry(creds.AccessToken); ok {
				expires = exp
			}
			return a.render(cmd.Context(), user, "user", func() formatter.Table {
				return formatter.UserTable(*user, expires, a.now())
			})
		},
	}
}

func (a *app) password(fromStdin bool) (string, error) {
	var (
		p   string
		err error
	)
	if fromStdin {
		p, err = a.readLine()
	} else {
		p, err = a.readPassword("Password: ")
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(p) == "" {
		return "", usageErrorf("password must not be empty")
	}
	return p, nil
}
