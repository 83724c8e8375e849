package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the available AI companions",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := appCtx.client.Services(cmd.Context())
		if err != nil {
			appCtx.flushNotices()
			return err
		}

		for _, svc := range services {
			fmt.Printf("%-24s %s\n", svc.ID, svc.Description)
		}
		return nil
	},
}

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "Manage stored conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		convs, err := appCtx.client.Conversations(cmd.Context())
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		if len(convs) == 0 {
			fmt.Println("No conversations yet.")
			return nil
		}

		for _, conv := range convs {
			fmt.Printf("%4d  %-40s %s\n", conv.ID, conv.Title, conv.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the messages of a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid conversation id %q", args[0])
		}

		msgs, err := appCtx.client.ConversationMessages(cmd.Context(), id)
		if err != nil {
			appCtx.flushNotices()
			return err
		}

		for _, msg := range msgs {
			fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
		}
		return nil
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid conversation id %q", args[0])
		}

		if err := appCtx.client.DeleteConversation(cmd.Context(), id); err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Println("Conversation deleted.")
		return nil
	},
}

func init() {
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
}
