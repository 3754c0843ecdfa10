package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NethermindEth/twitterbot/pkg/config"
	"github.com/NethermindEth/twitterbot/pkg/twitter"
	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/logger"
	"github.com/NethermindEth/twitterbot/pkg/utils/metrics"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	fail    = color.New(color.FgRed).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
)

// app is shared by every subcommand and filled in before any of them runs.
type app struct {
	cfg     *config.Config
	client  *twitter.Client
	metrics *metrics.MetricsCollector

	jsonOutput  bool
	showMetrics bool

	out    io.Writer
	errOut io.Writer
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return err
	}
	logCfg.Output = a.errOut
	logger.SetDefault(logCfg)
	slog.Debug("configuration loaded", "config", cfg)

	a.metrics = metrics.NewMetricsCollector()

	clientCfg := cfg.ClientConfig()
	clientCfg.Metrics = a.metrics
	a.client, err = twitter.NewClient(clientCfg)
	return err
}

func (a *app) teardown() error {
	if !a.showMetrics || a.metrics == nil {
		return nil
	}
	fmt.Fprintf(a.errOut, "\n%s Metrics:\n", info("📊"))
	return a.metrics.WriteJSON(a.errOut)
}

// spin runs fn behind a spinner on the error stream. Nothing is drawn
// unless that stream is a terminal.
func (a *app) spin(suffix string, fn func() error) error {
	f, ok := a.errOut.(*os.File)
	if !ok {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = " " + suffix
	s.Start()
	err := fn()
	s.Stop()
	return err
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "twitterbot",
		Short:         "Post, search and manage tweets through the v1.1 API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print raw JSON instead of formatted output")
	rootCmd.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print collected request metrics on exit")

	rootCmd.AddCommand(
		newTweetCmd(a),
		newTweetActionCmd(a, "favorite", "Like a tweet", (*twitter.Client).Favorite),
		newTweetActionCmd(a, "unfavorite", "Remove a like from a tweet", (*twitter.Client).Unfavorite),
		newTweetActionCmd(a, "retweet", "Retweet a tweet", (*twitter.Client).Retweet),
		newTweetActionCmd(a, "unretweet", "Undo a retweet", (*twitter.Client).Unretweet),
		newTweetActionCmd(a, "show", "Show a single tweet", (*twitter.Client).GetTweet),
		newSearchCmd(a),
		newUploadCmd(a),
		newLoginCmd(a),
	)

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout, errOut: os.Stderr}

	if err := run(ctx, a, os.Args[1:]); err != nil {
		reportError(a.errOut, err)
		stop()
		os.Exit(1)
	}
}

// run executes one command line. Metrics are printed even when the command
// failed.
func run(ctx context.Context, a *app, args []string) error {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	err := rootCmd.ExecuteContext(ctx)
	if metricsErr := a.teardown(); err == nil {
		err = metricsErr
	}
	return err
}

func reportError(w io.Writer, err error) {
	var apiErr *twitter.APIError
	var missing *twitter.MissingCredentialError
	switch {
	case stderrors.As(err, &missing):
		fmt.Fprintf(w, "\n%s Missing credential %s, set it in the environment or .env\n", fail("❌"), warn(missing.Field))
	case stderrors.As(err, &apiErr):
		fmt.Fprintf(w, "\n%s Twitter rejected the request (HTTP %d, code %d): %s\n", fail("❌"), apiErr.StatusCode, apiErr.Code, apiErr.Message)
	default:
		fmt.Fprintf(w, "\n%s Error: %v\n", fail("❌"), err)
	}

	attrs := []any{"error", err}
	if errType, ok := errors.TypeOf(err); ok {
		attrs = append(attrs, "type", errType)
	}
	var typed *errors.Error
	if stderrors.As(err, &typed) {
		attrs = append(attrs, "stack", typed.Stack)
	}
	slog.Debug("command failed", attrs...)
}
