package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuannvm/godenodo/internal/app"
	"github.com/tuannvm/godenodo/internal/config"
)

// test_login checks a credentials file against the portal without searching
// and lists the cookies the session ends up with.
func main() {
	cmd := &cobra.Command{
		Use:          "test_login <credentials-file>",
		Short:        "Verify Denodo portal credentials",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			var console io.Writer = io.Discard
			if verbose {
				console = cmd.OutOrStdout()
			}

			a, err := app.New(cfg, console, app.Endpoints{})
			if err != nil {
				return err
			}

			ctx, cancel := app.SignalContext(cmd.Context())
			defer cancel()

			form, err := a.Resolver().Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.Service().Login(ctx, form); err != nil {
				return err
			}

			loginURL := a.Resolver().LoginURL()
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully authenticated with Denodo!")
			for _, c := range a.Session().Cookies(loginURL) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d bytes)\n", c.Name, len(c.Value))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "print the login diagnostics")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		app.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
