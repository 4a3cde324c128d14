package cli

import (
	"craveboard-cli/internal/fetch"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEmail(email); err != nil {
				return writeErr(cmd, err)
			}
			c, err := app.connect(fetch.NopNotifier{})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			if err := c.auth.Login(cmd.Context(), email, password); err != nil {
				return writeErr(cmd, err)
			}
			sess, _ := c.session.Current()
			return writeOut(cmd, app, map[string]any{"user": sess.User})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect(fetch.NopNotifier{})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := c.auth.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"message": "logged out"})
		},
	}
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored admin identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect(fetch.NopNotifier{})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			sess, ok := c.session.Current()
			if !ok {
				return writeErr(cmd, errNotLoggedIn)
			}
			return writeOut(cmd, app, map[string]any{"user": sess.User})
		},
	}
	return cmd
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Admin profile commands",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var name, imagePath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the admin name and optional avatar image",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if err := c.auth.UpdateProfile(cmd.Context(), name, imagePath); err != nil {
				return err
			}
			sess, _ := c.session.Current()
			return writeOut(cmd, app, map[string]any{"user": sess.User})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an avatar image (optional)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
