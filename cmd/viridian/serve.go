package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viridian-dev/viridian"
	"github.com/viridian-dev/viridian/internal/demo"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve [demo]",
		Short: "Serve a demo live over HTTP",
		Long: `Serve a demo application. The page reflects every commit over a
websocket and browser events are dispatched back to the document.

Examples:
  viridian serve
  viridian serve todo --addr=0.0.0.0:8080 --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "counter"
			if len(args) == 1 {
				name = args[0]
			}
			app, err := demo.Lookup(name)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Server.Metrics = metrics
			}

			a, err := viridian.NewApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd, "serving %s on http://%s", name, cfg.Server.Addr)
			return a.Serve(ctx, app.Root())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose /metrics")

	return cmd
}
