package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tuannvm/godenodo/internal/app"
	"github.com/tuannvm/godenodo/internal/config"
	"github.com/tuannvm/godenodo/internal/tui"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "godenodo <search-term> <credentials-file>",
		Short: "Search Denodo support case comments",
		Long: `godenodo logs into the Denodo support portal with the name=value pairs of a
credentials file (username, password and _eventId) and prints the raw result
of a case-comment search.`,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := config.ParseArgs(append([]string{cmd.Name()}, args...))
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-file", "", "write logs to a rotated file instead of stderr")
	flags.Duration("timeout", 30*time.Second, "per-request timeout, 0 disables it")
	flags.Bool("redact", false, "mask credential and cookie values in console output")
	flags.BoolP("interactive", "i", false, "show results in an interactive terminal UI")

	v := viper.GetViper()
	_ = v.BindPFlag("debug", flags.Lookup("debug"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("redact", flags.Lookup("redact"))
	_ = v.BindPFlag("interactive", flags.Lookup("interactive"))
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	parsed, err := config.ParseArgs(append([]string{cmd.Name()}, args...))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := app.SignalContext(cmd.Context())
	defer cancel()

	if cfg.Interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("--interactive requires a terminal")
		}
		// console diagnostics would corrupt the screen
		a, err := app.New(cfg, io.Discard, app.Endpoints{})
		if err != nil {
			return err
		}
		return tui.NewApp(ctx, a.Resolver(), a.Service(), parsed.CredentialsPath, parsed.SearchTerm).Run()
	}

	a, err := app.New(cfg, cmd.OutOrStdout(), app.Endpoints{})
	if err != nil {
		return err
	}
	return a.Run(ctx, parsed)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		app.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
