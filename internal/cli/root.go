// Package cli is the terminal front end of the dashboard. Each command
// drives the session store, route guard and data views the web dashboard
// uses.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/guard"
	"github.com/jobfinder/dashboard-go/internal/token"
)

// Options overrides what the root command would otherwise build from the
// environment.
type Options struct {
	Config     *config.Config
	Tokens     token.Store
	HTTPClient *http.Client
	// ReadPassword replaces the terminal password prompt.
	ReadPassword func(prompt string) (string, error)
}

var errNotLoggedIn = errors.New("not logged in, run `jobfinder login` first")

type runner struct {
	opts   Options
	apiURL string
	app    *App
	in     *bufio.Reader
}

func NewRootCmd(version string, opts Options) *cobra.Command {
	r := &runner{opts: opts}

	root := &cobra.Command{
		Use:           "jobfinder",
		Short:         "Job Finder dashboard CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if r.app != nil {
				r.app.Close()
				r.app = nil
			}
		},
	}
	root.PersistentFlags().StringVar(&r.apiURL, "api-url", "", "Backend API URL (overrides API_URL)")

	root.AddCommand(newLoginCmd(r))
	root.AddCommand(newRegisterCmd(r))
	root.AddCommand(newLogoutCmd(r))
	root.AddCommand(newWhoamiCmd(r))
	root.AddCommand(newJobsCmd(r))
	root.AddCommand(newStatsCmd(r))
	root.AddCommand(newUpworkCmd(r))
	return root
}

func (r *runner) setup(cmd *cobra.Command) error {
	cfg := r.opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if r.apiURL != "" {
		copied := *cfg
		copied.APIURL = r.apiURL
		cfg = &copied
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := newApp(cmd.Context(), cfg, r.opts.Tokens, r.opts.HTTPClient, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// requireSession restores the session and lets the route guard decide
// whether the command may render.
func (r *runner) requireSession(ctx context.Context) error {
	r.app.session.Init(ctx)

	g := guard.New(ctx, r.app.session, r.app.history)
	defer g.Close()

	if g.Decision() != guard.RenderContent {
		return errNotLoggedIn
	}
	return nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
