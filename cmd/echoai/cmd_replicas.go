package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"echoai/internal/api"
)

var replicasCmd = &cobra.Command{
	Use:   "replicas",
	Short: "Manage your digital replicas",
}

var replicaDescription string

var replicasCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new replica",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := appCtx.client.CreateReplica(cmd.Context(), api.ReplicaRequest{
			Name:        args[0],
			Description: replicaDescription,
		})
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Replica %d (%s) created.\n", rep.ID, rep.Name)
		return nil
	},
}

var replicasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your replicas",
	RunE: func(cmd *cobra.Command, args []string) error {
		reps, err := appCtx.client.Replicas(cmd.Context())
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		if len(reps) == 0 {
			fmt.Println("No replicas yet.")
			return nil
		}

		for _, rep := range reps {
			fmt.Printf("%4d  %-20s %-10s %d interactions\n", rep.ID, rep.Name, rep.Status, rep.InteractionCount)
		}
		return nil
	},
}

var replicasTrainCmd = &cobra.Command{
	Use:   "train <id>",
	Short: "Train a replica on your memories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid replica id %q", args[0])
		}

		stats, err := appCtx.client.TrainReplica(cmd.Context(), id)
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Training started: %s, %d memories.\n", stats.Status, stats.MemoriesTrained)
		return nil
	},
}

var replicasStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Show a replica's training state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid replica id %q", args[0])
		}

		stats, err := appCtx.client.ReplicaStats(cmd.Context(), id)
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Status: %s\nMemories trained: %d\nInteractions: %d\n",
			stats.Status, stats.MemoriesTrained, stats.InteractionCount)
		return nil
	},
}

var replicasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replica",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid replica id %q", args[0])
		}

		if err := appCtx.client.DeleteReplica(cmd.Context(), id); err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Println("Replica deleted.")
		return nil
	},
}

func init() {
	replicasCreateCmd.Flags().StringVar(&replicaDescription, "description", "", "what this replica is for")

	replicasCmd.AddCommand(replicasCreateCmd)
	replicasCmd.AddCommand(replicasListCmd)
	replicasCmd.AddCommand(replicasTrainCmd)
	replicasCmd.AddCommand(replicasStatsCmd)
	replicasCmd.AddCommand(replicasDeleteCmd)
}
