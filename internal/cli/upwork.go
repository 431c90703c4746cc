package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jobfinder/dashboard-go/internal/view"
)

func newUpworkCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "upwork", Short: "Manage the Upwork account connection"}
	cmd.AddCommand(newUpworkStatusCmd(r))
	cmd.AddCommand(newUpworkConnectCmd(r))
	cmd.AddCommand(newUpworkCallbackCmd(r))
	cmd.AddCommand(newUpworkDisconnectCmd(r))
	cmd.AddCommand(newUpworkSyncCmd(r))
	return cmd
}

// settings builds the settings view; prompts and browser hand-off go
// through the terminal.
func (r *runner) settings(cmd *cobra.Command, assumeYes bool) *view.Settings {
	opener := view.OpenerFunc(func(_ context.Context, authURL string) error {
		fmt.Fprintf(out(cmd), "Open this URL to authorize Upwork access:\n  %s\n", authURL)
		return nil
	})
	confirm := func(question string) bool {
		return assumeYes || r.confirm(cmd, question)
	}
	return view.NewSettings(r.app.upwork, r.app.toasts, opener, confirm)
}

func newUpworkStatusCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether Upwork is connected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			s := r.settings(cmd, false)
			s.CheckStatus(cmd.Context())
			if s.State().Upwork == nil {
				return errors.New("upwork status unavailable")
			}
			fmt.Fprintf(out(cmd), "Upwork: %s\n", connectedLabel(s.State().IsUpworkConnected()))
			return nil
		},
	}
}

func newUpworkConnectCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Start the Upwork OAuth flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			if res := r.settings(cmd, false).Connect(cmd.Context()); !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}
}

func newUpworkCallbackCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "callback <redirect-url-or-query>",
		Short: "Finish the OAuth flow from the URL the browser landed on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := callbackQuery(args[0])
			if err != nil {
				return err
			}
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			if !r.settings(cmd, false).HandleOAuthCallback(cmd.Context(), query) {
				return errors.New("no upwork result in the callback")
			}
			return nil
		},
	}
}

// callbackQuery accepts a full settings URL or just its query string.
func callbackQuery(raw string) (url.Values, error) {
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		return u.Query(), nil
	}
	return url.ParseQuery(raw)
}

func newUpworkDisconnectCmd(r *runner) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the Upwork account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			if res := r.settings(cmd, yes).Disconnect(cmd.Context()); !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newUpworkSyncCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the Upwork profile into the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}
			if res := r.settings(cmd, false).Sync(cmd.Context()); !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}
}
