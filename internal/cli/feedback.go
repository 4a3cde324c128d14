package cli

import (
	"errors"
	"fmt"

	"craveboard-cli/internal/format"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"

	"github.com/spf13/cobra"
)

func newFeedbackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Feedback commands",
	}
	cmd.AddCommand(newFeedbackListCmd(app))
	cmd.AddCommand(newFeedbackDeleteCmd(app))
	cmd.AddCommand(newFeedbackCreateCmd(app))
	return cmd
}

func newFeedbackListCmd(app *App) *cobra.Command {
	var page, limit int
	var sortBy, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidSortBy(sortBy) {
				return writeErr(cmd, errInvalidFlag("sort-by", sortBy,
					model.SortByCreatedAt, model.SortByName, model.SortByEmail))
			}
			if order != model.OrderAsc && order != model.OrderDesc {
				return writeErr(cmd, errInvalidFlag("order", order, model.OrderAsc, model.OrderDesc))
			}
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			c.store.Dispatch(state.SetFeedbackSort{Sort: model.SortSpec{SortBy: sortBy, Order: order}})
			if limit > 0 {
				c.store.Dispatch(state.SetFeedbackLimit{Limit: limit})
			}
			if page > 1 {
				c.store.Dispatch(state.SetFeedbackPage{Page: page})
			}

			c.feedback.EnsureFresh(cmd.Context(), false)
			snap := c.store.Snapshot().Feedback
			if snap.Error != "" {
				return errors.New(snap.Error)
			}

			if app.Format == "table" {
				return format.Write(cmd.OutOrStdout(), feedbackTable(snap), app.Format, app.PrettyJSON)
			}
			return writeOut(cmd, app, map[string]any{
				"data":       snap.Data,
				"pagination": snap.Pagination,
				"sort":       snap.Sort,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default 8)")
	cmd.Flags().StringVar(&sortBy, "sort-by", model.SortByCreatedAt, "Sort field (createdAt|name|email)")
	cmd.Flags().StringVar(&order, "order", model.OrderDesc, "Sort order (asc|desc)")
	return cmd
}

func feedbackTable(snap state.FeedbackState) format.Table {
	t := format.Table{Header: []string{"ID", "NAME", "EMAIL", "DESCRIPTION", "CREATED"}}
	for _, f := range snap.Data {
		t.Rows = append(t.Rows, []string{f.ID, f.Name, f.Email, f.Description, f.CreatedAt})
	}
	t.Footer = fmt.Sprintf("page %d/%d, %d total, sorted by %s %s",
		snap.Pagination.CurrentPage, snap.Pagination.TotalPages, snap.Pagination.Total,
		snap.Sort.SortBy, snap.Sort.Order)
	return t
}

func newFeedbackDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a feedback entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if err := c.feedback.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"message": "deleted", "id": args[0]})
		},
	}
	return cmd
}

// newFeedbackCreateCmd submits feedback through the public endpoint. Dev
// helper for seeding a local backend; the dashboard itself never creates
// feedback.
func newFeedbackCreateCmd(app *App) *cobra.Command {
	var name, email, description string

	cmd := &cobra.Command{
		Use:    "create",
		Short:  "Submit feedback (public endpoint; dev helper)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEmail(email); err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			fb, err := c.api.CreateFeedback(cmd.Context(), name, email, description)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fb})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Submitter name")
	cmd.Flags().StringVar(&email, "email", "", "Submitter email")
	cmd.Flags().StringVar(&description, "description", "", "Feedback text")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
