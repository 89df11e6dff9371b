package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vellumcad/vellum/serve"
)

var serveAddrFlag string

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve drawings over HTTP",
		Long: `Serve the drawings in a directory (or one drawing file) for preview.
Each drawing is rendered on demand to the format named by the request,
e.g. GET /drawings/cart.svg. Prometheus metrics are exposed on
/metrics.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			addr := viper.GetString(serveAddrKey)

			server := &http.Server{
				Addr:    addr,
				Handler: serve.NewServer(path, slog.Default()).Handler(),
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				slog.Info("received interrupt signal, shutting down")

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					slog.Error("shutdown failed", "error", err)
				}
			}()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s http://localhost%s/drawings (%s)\n",
				styled(out, styleHeading, "serving"), addr, path)
			slog.Info("serving drawings", "addr", addr, "path", path)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving drawings: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&serveAddrFlag, addrFlagName, "a", viper.GetString(serveAddrKey), "listen address")
	bindFlagToConfig(cmd.Flags().Lookup(addrFlagName), serveAddrKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
