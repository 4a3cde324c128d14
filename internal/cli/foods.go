package cli

import (
	"errors"
	"fmt"

	"craveboard-cli/internal/format"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"

	"github.com/spf13/cobra"
)

func newFoodsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foods",
		Short: "Catalog commands",
	}
	cmd.AddCommand(newFoodsListCmd(app))
	cmd.AddCommand(newFoodsCreateCmd(app))
	cmd.AddCommand(newFoodsUpdateCmd(app))
	cmd.AddCommand(newFoodsDeleteCmd(app))
	return cmd
}

func newFoodsListCmd(app *App) *cobra.Command {
	var page, limit int
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && !model.ValidCategory(category) {
				return writeErr(cmd, errInvalidFlag("category", category, model.Categories()...))
			}
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if category != "" {
				c.store.Dispatch(state.SetFoodsCategory{Category: category})
			}
			if limit > 0 {
				c.store.Dispatch(state.SetFoodsLimit{Limit: limit})
			}
			if page > 1 {
				c.store.Dispatch(state.SetFoodsPage{Page: page})
			}

			c.foods.EnsureFresh(cmd.Context(), false)
			snap := c.store.Snapshot().Foods
			if snap.Error != "" {
				return errors.New(snap.Error)
			}

			if app.Format == "table" {
				return format.Write(cmd.OutOrStdout(), foodsTable(snap), app.Format, app.PrettyJSON)
			}
			return writeOut(cmd, app, map[string]any{
				"data":       snap.Data,
				"pagination": snap.Pagination,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default 24)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category (CRAVINGS|MOOD)")
	return cmd
}

func foodsTable(snap state.FoodsState) format.Table {
	t := format.Table{Header: []string{"ID", "NAME", "CATEGORY", "IMAGE", "CREATED"}}
	for _, f := range snap.Data {
		image := "-"
		if f.Image != nil {
			image = *f.Image
		}
		t.Rows = append(t.Rows, []string{f.ID, f.Name, f.Category, image, f.CreatedAt})
	}
	t.Footer = fmt.Sprintf("page %d/%d, %d total",
		snap.Pagination.CurrentPage, snap.Pagination.TotalPages, snap.Pagination.Total)
	return t
}

func newFoodsCreateCmd(app *App) *cobra.Command {
	var name, category, imagePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidCategory(category) {
				return writeErr(cmd, errInvalidFlag("category", category, model.Categories()...))
			}
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if err := c.foods.Create(cmd.Context(), name, category, imagePath); err != nil {
				return err
			}
			snap := c.store.Snapshot().Foods
			return writeOut(cmd, app, map[string]any{"data": snap.Data[len(snap.Data)-1]})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Entry name")
	cmd.Flags().StringVar(&category, "category", "", "Category (CRAVINGS|MOOD)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an image file (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newFoodsUpdateCmd(app *App) *cobra.Command {
	var name, category, imagePath string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidCategory(category) {
				return writeErr(cmd, errInvalidFlag("category", category, model.Categories()...))
			}
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if err := c.foods.Update(cmd.Context(), args[0], name, category, imagePath); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"message": "updated", "id": args[0]})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Entry name")
	cmd.Flags().StringVar(&category, "category", "", "Category (CRAVINGS|MOOD)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an image file (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newFoodsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog entry",
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

			if err := c.foods.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"message": "deleted", "id": args[0]})
		},
	}
	return cmd
}
