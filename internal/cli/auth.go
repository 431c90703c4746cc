package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/format"
	"github.com/jobfinder/dashboard-go/internal/model"
	"github.com/jobfinder/dashboard-go/internal/validate"
)

type credentials struct {
	email    string
	password string
	confirm  string
}

func (r *runner) askCredentials(cmd *cobra.Command, c *credentials, withConfirm bool) error {
	var err error
	if c.email == "" {
		if c.email, err = r.readLine(cmd, "Email: "); err != nil {
			return err
		}
	}
	if c.password == "" {
		if c.password, err = r.readPassword(cmd, "Password: "); err != nil {
			return err
		}
	}
	if withConfirm && c.confirm == "" {
		if c.confirm, err = r.readPassword(cmd, "Confirm password: "); err != nil {
			return err
		}
	}
	return nil
}

func newLoginCmd(r *runner) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.askCredentials(cmd, &c, false); err != nil {
				return err
			}
			req := model.LoginRequest{Email: c.email, Password: c.password}
			if errs := validate.Login(req); !errs.Valid() {
				return errs
			}

			res := r.app.session.Login(cmd.Context(), req)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintln(out(cmd), config.MsgLoginSuccess)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.email, "email", "", "Account email")
	cmd.Flags().StringVar(&c.password, "password", "", "Account password (prompted when empty)")
	return cmd
}

func newRegisterCmd(r *runner) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.askCredentials(cmd, &c, true); err != nil {
				return err
			}
			req := model.RegisterRequest{Email: c.email, Password: c.password, ConfirmPassword: c.confirm}
			if errs := validate.Register(req); !errs.Valid() {
				return errs
			}

			res := r.app.session.Register(cmd.Context(), req)
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintln(out(cmd), config.MsgRegisterSuccess)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.email, "email", "", "Account email")
	cmd.Flags().StringVar(&c.password, "password", "", "Account password (prompted when empty)")
	cmd.Flags().StringVar(&c.confirm, "confirm", "", "Password confirmation (prompted when empty)")
	return cmd
}

func newLogoutCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.app.session.Logout(cmd.Context())
			fmt.Fprintln(out(cmd), config.MsgLogoutSuccess)
			return nil
		},
	}
}

func newWhoamiCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			user := r.app.session.Snapshot().User
			w := out(cmd)
			fmt.Fprintf(w, "Email:   %s\n", user.Email)
			if user.Name != "" {
				fmt.Fprintf(w, "Name:    %s\n", user.Name)
			}
			if user.HourlyRate > 0 {
				fmt.Fprintf(w, "Rate:    %s/hr\n", format.Currency(user.HourlyRate))
			}
			if len(user.Skills) > 0 {
				fmt.Fprintf(w, "Skills:  %s\n", strings.Join(user.Skills, ", "))
			}
			fmt.Fprintf(w, "Upwork:  %s\n", connectedLabel(user.UpworkConnected))
			return nil
		},
	}
}

func connectedLabel(connected bool) string {
	if connected {
		return "connected"
	}
	return "not connected"
}
