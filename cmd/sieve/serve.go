package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve/internal/logging"
	"github.com/aretw0/sieve/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation server",
	Long:  `Serves the schema as a JSON API: POST /validate checks a payload, /metrics exposes prometheus counters. With --watch the schema is recompiled whenever its file changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, _ := cmd.Flags().GetString("schema")
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")
		verbose, _ := cmd.Flags().GetBool("verbose")

		logger := logging.FromVerbose(verbose)

		srvCore, err := server.New(server.Config{
			SchemaPath: schemaPath,
			Logger:     logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading schema: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if watch {
			if err := srvCore.Watch(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error watching schema: %v\n", err)
				os.Exit(1)
			}
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: srvCore.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting sieve server", "addr", srv.Addr, "schema", schemaPath, "watch", watch)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shCancel()

			if err := srv.Shutdown(shCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("sieve server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("schema", "s", "", "Path to the schema document")
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("watch", false, "Reload the schema when its file changes")
	serveCmd.MarkFlagRequired("schema")
}
