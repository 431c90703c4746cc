package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/format"
	"github.com/jobfinder/dashboard-go/internal/model"
	"github.com/jobfinder/dashboard-go/internal/validate"
	"github.com/jobfinder/dashboard-go/internal/view"
)

const titleWidth = 48

func newJobsCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "jobs", Short: "Browse and triage matched jobs"}
	cmd.AddCommand(newJobsListCmd(r))
	cmd.AddCommand(newJobsShowCmd(r))
	cmd.AddCommand(newJobsStatusCmd(r))
	cmd.AddCommand(newJobsNoteCmd(r))
	return cmd
}

type listFlags struct {
	page       int
	limit      int
	sortBy     string
	sortOrder  string
	status     string
	budgetType string
	category   string
	search     string
	minScore   string
}

func (f listFlags) update() model.FilterUpdate {
	sortBy := model.SortKey(f.sortBy)
	sortOrder := model.SortDirection(f.sortOrder)
	page, limit := f.page, f.limit
	u := model.FilterUpdate{
		Page:      &page,
		Limit:     &limit,
		SortBy:    &sortBy,
		SortOrder: &sortOrder,
		Set: map[string]string{
			"status":      f.status,
			"budget_type": f.budgetType,
			"category":    f.category,
			"search":      f.search,
			"min_score":   f.minScore,
		},
	}
	return u
}

func newJobsListCmd(r *runner) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, best match first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			update := f.update()
			filters := model.DefaultJobFilters(config.DefaultPageSize).Apply(update)
			if errs := validate.JobFilters(filters); !errs.Valid() {
				return errs
			}
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}

			list := view.NewJobsList(r.app.jobs, r.app.toasts, update)
			list.Fetch(cmd.Context())
			state := list.State()
			if state.Error != "" {
				return errors.New(state.Error)
			}
			printJobs(cmd, state)
			return nil
		},
	}
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", config.DefaultPageSize, "Jobs per page")
	cmd.Flags().StringVar(&f.sortBy, "sort", string(model.SortByMatchScore), "Sort by match_score, posted_at or created_at")
	cmd.Flags().StringVar(&f.sortOrder, "order", string(model.SortDesc), "Sort order asc or desc")
	cmd.Flags().StringVar(&f.status, "status", "", "Only jobs with this status")
	cmd.Flags().StringVar(&f.budgetType, "budget-type", "", "Only fixed or hourly jobs")
	cmd.Flags().StringVar(&f.category, "category", "", "Only jobs in this category")
	cmd.Flags().StringVar(&f.search, "search", "", "Full-text search")
	cmd.Flags().StringVar(&f.minScore, "min-score", "", "Minimum match score (0-100)")
	return cmd
}

func printJobs(cmd *cobra.Command, state view.JobsState) {
	w := out(cmd)
	if len(state.Jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tMATCH\tBUDGET\tPOSTED")
	for _, job := range state.Jobs {
		posted := ""
		if job.PostedAt != nil {
			posted = format.Since(*job.PostedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID,
			format.Truncate(job.Title, titleWidth),
			job.Status.Label(),
			format.JobMatchScore(job.MatchScore),
			format.Budget(&job),
			posted,
		)
	}
	tw.Flush()

	meta := state.Meta
	fmt.Fprintf(w, "Page %d of %d (%s jobs)\n", meta.Page, max(meta.TotalPages, 1), format.Number(float64(meta.Total)))
}

func newJobsShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}

			detail := view.NewJobDetail(r.app.jobs, args[0])
			detail.Fetch(cmd.Context())
			state := detail.State()
			if state.Error != "" {
				return errors.New(state.Error)
			}
			if state.Job == nil {
				return errors.New(config.MsgNotFound)
			}
			printJob(cmd, state.Job)
			return nil
		},
	}
}

func printJob(cmd *cobra.Command, job *model.Job) {
	w := out(cmd)
	fmt.Fprintln(w, job.Title)
	fmt.Fprintf(w, "Status:    %s\n", job.Status.Label())
	fmt.Fprintf(w, "Match:     %s\n", format.JobMatchScore(job.MatchScore))
	fmt.Fprintf(w, "Budget:    %s\n", format.Budget(job))
	if job.Category != "" {
		fmt.Fprintf(w, "Category:  %s\n", job.Category)
	}
	if len(job.SkillsRequired) > 0 {
		fmt.Fprintf(w, "Skills:    %s\n", strings.Join(job.SkillsRequired, ", "))
	}
	if job.PostedAt != nil {
		fmt.Fprintf(w, "Posted:    %s\n", format.Date(*job.PostedAt))
	}
	if c := job.ClientInfo; c != nil {
		client := c.Location
		if c.PaymentVerified {
			client = strings.TrimSpace(client + " (payment verified)")
		}
		if c.TotalSpent != nil {
			client = strings.TrimSpace(client + ", spent " + format.Currency(float64(*c.TotalSpent)))
		}
		if client != "" {
			fmt.Fprintf(w, "Client:    %s\n", client)
		}
	}
	if job.URL != "" {
		fmt.Fprintf(w, "URL:       %s\n", job.URL)
	}
	if len(job.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(job.Tags, ", "))
	}
	if job.Notes != "" {
		fmt.Fprintf(w, "Notes:     %s\n", job.Notes)
	}
	if job.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, job.Description)
	}
}

func newJobsStatusCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a job to another status",
		Long:  "Move a job to another status: " + statusList() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.JobStatus(strings.ToLower(args[1]))
			if !status.IsValid() {
				return fmt.Errorf("invalid status %q, want one of %s", args[1], statusList())
			}
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}

			detail := view.NewJobDetail(r.app.jobs, args[0])
			res := detail.UpdateStatus(cmd.Context(), status)
			if !res.Success {
				return errors.New(res.Error)
			}
			r.app.toasts.Success("Success", "Job status updated to "+status.Label())
			return nil
		},
	}
}

func newJobsNoteCmd(r *runner) *cobra.Command {
	var notes string
	var tags []string
	cmd := &cobra.Command{
		Use:   "note <id>",
		Short: "Set notes or tags on a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update model.JobUpdate
			if cmd.Flags().Changed("notes") {
				clean := validate.SanitizeInput(notes)
				update.Notes = &clean
			}
			if cmd.Flags().Changed("tags") {
				update.Tags = &tags
			}
			if update.Notes == nil && update.Tags == nil {
				return errors.New("nothing to update, pass --notes or --tags")
			}
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}

			detail := view.NewJobDetail(r.app.jobs, args[0])
			res := detail.UpdateJob(cmd.Context(), update)
			if !res.Success {
				return errors.New(res.Error)
			}
			r.app.toasts.Success("Success", "Job updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated tags")
	return cmd
}

func statusList() string {
	names := make([]string, len(model.JobStatuses))
	for i, s := range model.JobStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func newStatsCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show job counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.requireSession(cmd.Context()); err != nil {
				return err
			}

			dash := view.NewDashboard(r.app.jobs)
			dash.Fetch(cmd.Context())
			state := dash.State()
			if state.Error != "" {
				return errors.New(state.Error)
			}

			tw := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
			for _, s := range model.JobStatuses {
				fmt.Fprintf(tw, "%s\t%d\n", s.Label(), state.Stats.Count(s))
			}
			fmt.Fprintf(tw, "Total\t%d\n", state.Total)
			return tw.Flush()
		},
	}
}
