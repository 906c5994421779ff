package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"benta/pkg/rabbitmq"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume sale events from RabbitMQ and log them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is required for the worker")
			}

			mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
			if err != nil {
				return err
			}
			defer mqClient.Close()

			done, err := mqClient.ConsumeSaleEvents(handleSaleEvent)
			if err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case <-quit:
				log.Println("Stopping worker...")
			case <-done:
				return fmt.Errorf("sale event stream closed by broker")
			}
			return nil
		},
	}
}

func handleSaleEvent(msg amqp.Delivery) error {
	ev, err := rabbitmq.DecodeSaleEvent(msg.Body)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"event":      ev.Event,
		"messageId":  msg.MessageId,
		"occurredAt": ev.OccurredAt,
		"saleID":     ev.Data["saleID"],
		"total":      ev.Data["total"],
	}).Info("Received sale event")
	return nil
}
