package cli

import (
	"errors"
	"os"

	"craveboard-cli/internal/model"

	"github.com/spf13/cobra"
)

func newLegalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legal",
		Short: "Legal document commands",
	}
	cmd.AddCommand(newLegalShowCmd(app))
	cmd.AddCommand(newLegalSaveCmd(app))
	return cmd
}

func newLegalShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the privacy policy and terms & conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			c.legal.Refresh(cmd.Context())
			snap := c.legal.Snapshot()
			if snap.Error != "" {
				return errors.New(snap.Error)
			}
			return writeOut(cmd, app, map[string]any{
				"privacyPolicy":   snap.PrivacyPolicy,
				"termsConditions": snap.TermsConditions,
			})
		},
	}
	return cmd
}

func newLegalSaveCmd(app *App) *cobra.Command {
	var privacyFile, termsFile string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save one or both legal documents from markdown files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if privacyFile == "" && termsFile == "" {
				return writeErr(cmd, errors.New("nothing to save: pass --privacy-policy-file and/or --terms-file"))
			}

			// Partial update: only the provided documents are sent; the
			// backend keeps the other field as-is.
			var docs model.LegalDocuments
			if privacyFile != "" {
				b, err := os.ReadFile(privacyFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				s := string(b)
				docs.PrivacyPolicy = &s
			}
			if termsFile != "" {
				b, err := os.ReadFile(termsFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				s := string(b)
				docs.TermsConditions = &s
			}

			c, err := app.connect(stderrNotifier{cmd: cmd})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()
			if err := requireSession(c); err != nil {
				return writeErr(cmd, err)
			}

			if err := c.legal.Save(cmd.Context(), docs); err != nil {
				return err
			}
			snap := c.legal.Snapshot()
			return writeOut(cmd, app, map[string]any{
				"privacyPolicy":   snap.PrivacyPolicy,
				"termsConditions": snap.TermsConditions,
			})
		},
	}

	cmd.Flags().StringVar(&privacyFile, "privacy-policy-file", "", "Markdown file with the privacy policy")
	cmd.Flags().StringVar(&termsFile, "terms-file", "", "Markdown file with the terms & conditions")
	return cmd
}
