package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/twitterbot/pkg/config"
	"github.com/NethermindEth/twitterbot/pkg/twitter/login"
)

func newLoginCmd(a *app) *cobra.Command {
	var addr string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a user token pair through the browser OAuth flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.LoginServerAddr
			}

			server, err := login.NewServer(login.Config{
				Addr:      addr,
				AppKey:    a.cfg.AppKey,
				AppSecret: a.cfg.AppSecret,
				Metrics:   a.metrics,
			})
			if err != nil {
				return err
			}
			if err := server.Start(); err != nil {
				return err
			}

			fmt.Fprintf(a.errOut, "\n%s Open %s in a browser to authorize the app\n", info("🔑"), warn(server.LoginURL()))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var pair *login.TokenPair
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer cancel()
				var err error
				pair, err = server.WaitForToken(gctx)
				return err
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				return server.Shutdown(shutdownCtx)
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if a.jsonOutput {
				return a.printJSON(map[string]string{
					config.TwitterUserTokenKey:       pair.Token,
					config.TwitterUserTokenSecretKey: pair.Secret,
				})
			}

			fmt.Fprintf(a.errOut, "\n%s Logged in. Add these to your environment or .env:\n\n", success("✓"))
			fmt.Fprintf(a.out, "%s=%s\n", config.TwitterUserTokenKey, pair.Token)
			fmt.Fprintf(a.out, "%s=%s\n", config.TwitterUserTokenSecretKey, pair.Secret)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Callback server address (defaults to "+config.LoginServerAddrKey+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Give up if the flow is not completed in time")

	return cmd
}
