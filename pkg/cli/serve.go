package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/r3d91ll/qmreport/pkg/api"
	"github.com/r3d91ll/qmreport/pkg/config"
	"github.com/r3d91ll/qmreport/pkg/logging"
)

// shutdownTimeout bounds the graceful shutdown.
const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd)
		},
	}
	cmd.Flags().String("host", "", "interface to bind (overrides server.host)")
	cmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	a.bindFlag(cmd, "server.host", "host")
	a.bindFlag(cmd, "server.port", "port")
	return cmd
}

func serverConfig(c config.ServerConfig) *api.ServerConfig {
	return &api.ServerConfig{
		Host:          c.Host,
		Port:          c.Port,
		ReadTimeout:   c.ReadTimeout,
		WriteTimeout:  c.WriteTimeout,
		IdleTimeout:   c.IdleTimeout,
		CORSOrigins:   c.CORSOrigins,
		EnableLogging: c.EnableLogging,
	}
}

// newServer wires the API routes onto a server for the loaded
// configuration.
func (a *app) newServer() (*api.Server, *api.Hub, error) {
	store, err := a.store()
	if err != nil {
		return nil, nil, err
	}
	hub := api.NewHub()
	srv := api.NewServer(serverConfig(a.cfg.Server))
	api.RegisterRoutes(srv.Router(), api.Services{
		Evaluator: a.evaluator(),
		History:   store,
		Renderer:  api.NewRenderer(a.cfg.ReportBuilderConfig(), a.cfg.Report.PreviewScale, nil),
		Threshold: a.cfg.Report.Threshold,
		Hub:       hub,
		Version:   appVersion,
	})
	return srv, hub, nil
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	srv, hub, err := a.newServer()
	if err != nil {
		return err
	}
	go hub.Run()
	defer hub.Stop()

	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s (Ctrl+C to stop)\n", srv.Address())

	<-ctx.Done()
	logging.LogEvent("api", "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
