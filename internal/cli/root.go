package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/fetch"
	"craveboard-cli/internal/format"
	"craveboard-cli/internal/session"
	"craveboard-cli/internal/state"
	"craveboard-cli/internal/tui"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:4000"

type App struct {
	APIURL     string
	PrettyJSON bool
	Format     string
	Verbose    bool

	log *slog.Logger
}

// logger is quiet unless --verbose; diagnostics go to stderr so stdout stays
// machine-readable.
func (app *App) logger() *slog.Logger {
	if app.log == nil {
		w := io.Discard
		if app.Verbose {
			w = os.Stderr
		}
		app.log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return app.log
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "craveboard",
		Short:        "Craveboard admin dashboard + CLI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive dashboard.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("CRAVEBOARD_API_URL", defaultAPIURL), "Base URL of the Craveboard API")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CRAVEBOARD_FORMAT", "json"), "Output format (json|table)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log request diagnostics to stderr")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newFoodsCmd(app))
	cmd.AddCommand(newFeedbackCmd(app))
	cmd.AddCommand(newLegalCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// clients bundles everything a command might touch: the session, the state
// store, the gateway, and one coordinator per collection.
type clients struct {
	session  *session.Store
	store    *state.Store
	api      *api.Client
	auth     *fetch.Auth
	foods    *fetch.Foods
	feedback *fetch.Feedback
	legal    *fetch.Legal
}

func (c *clients) Close() {
	if c.session != nil {
		_ = c.session.Close()
	}
}

// connect opens the session store and wires the gateway to it: the token is
// read at call time, and a credential-invalid response clears the session
// from whatever endpoint tripped it.
func (app *App) connect(n fetch.Notifier) (*clients, error) {
	sess, err := session.Open()
	if err != nil {
		return nil, err
	}
	app.logger().Debug("connected", "api_url", app.APIURL, "signed_in", sess.Token() != "")
	client := api.New(app.APIURL,
		api.WithTokenSource(sess.Token),
		api.WithCredentialInvalidHook(func() { _ = sess.Clear() }),
	)
	store := state.NewStore()
	return &clients{
		session:  sess,
		store:    store,
		api:      client,
		auth:     &fetch.Auth{Session: sess, Gateway: client, Notifier: n},
		foods:    &fetch.Foods{Store: store, Session: sess, Gateway: client, Notifier: n},
		feedback: &fetch.Feedback{Store: store, Session: sess, Gateway: client, Notifier: n},
		legal:    &fetch.Legal{Session: sess, Gateway: client, Notifier: n},
	}, nil
}

func runDashboard(app *App) error {
	c, err := app.connect(fetch.NopNotifier{})
	if err != nil {
		return err
	}
	defer c.Close()
	return tui.Run(tui.Deps{
		Session:  c.session,
		Store:    c.store,
		Auth:     c.auth,
		Foods:    c.foods,
		Feedback: c.feedback,
		Legal:    c.legal,
	})
}

// requireSession fails fast for commands that need a credential; the API
// would reject them anyway, this just gives a better message.
func requireSession(c *clients) error {
	if c.session.Token() == "" {
		return errNotLoggedIn
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// stderrNotifier surfaces coordinator notifications on stderr so command
// stdout stays machine-readable.
type stderrNotifier struct{ cmd *cobra.Command }

func (n stderrNotifier) Notify(msg string) {
	fmt.Fprintln(n.cmd.ErrOrStderr(), msg)
}

func (n stderrNotifier) NotifyError(msg string) {
	fmt.Fprintln(n.cmd.ErrOrStderr(), "error: "+msg)
}
