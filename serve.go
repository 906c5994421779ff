package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"benta/internal/keepalive"
	"benta/internal/server"
	"benta/pkg/rabbitmq"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}

			var opts server.Options
			if cfg.RabbitMQURL != "" {
				mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
				if err != nil {
					return err
				}
				defer mqClient.Close()
				opts.Publisher = mqClient
			} else {
				log.Info("RABBITMQ_URL not set, sale events are disabled")
			}

			app := server.NewApp(cfg, db, opts)

			if cfg.IsProduction() {
				scheduler, err := keepalive.Start(keepalive.NewPinger(cfg.BackendURL), cfg.KeepAliveInterval)
				if err != nil {
					return err
				}
				defer scheduler.Stop()
			}

			// Graceful shutdown handling
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			listenErr := make(chan error, 1)
			go func() {
				log.WithField("base_url", cfg.BaseURL).Printf("Starting server on port %s", cfg.Port)
				listenErr <- app.Listen(cfg.Port)
			}()

			select {
			case err := <-listenErr:
				return err
			case <-quit:
			}

			log.Println("Shutting down server...")
			if err := app.Shutdown(); err != nil {
				log.Printf("Error during Fiber shutdown: %v", err)
			}
			log.Println("Server gracefully stopped")
			return nil
		},
	}
}
