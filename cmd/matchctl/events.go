package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wevolve-backend/internal/queue"
	"wevolve-backend/internal/shared/config"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect published match events",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print match events as they are published",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetString("job")
		cfg := config.Load()

		client, err := queue.NewAMQPClient(cfg.RabbitMQURL, cfg.MatchEventsExchange)
		if err != nil {
			return err
		}
		defer client.Close()

		binding := queue.EventMatchComputed + ".#"
		if jobID != "" {
			binding = queue.Message{Type: queue.EventMatchComputed, JobID: jobID}.RoutingKey()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		enc := json.NewEncoder(cmd.OutOrStdout())
		fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s (%s)\n", cfg.MatchEventsExchange, binding)
		err = client.Subscribe(ctx, binding, func(msg queue.Message) error {
			return enc.Encode(msg)
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

func init() {
	eventsTailCmd.Flags().String("job", "", "Only show events for this job id")

	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}
