package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"echoai/internal/api"
)

var memoriesCmd = &cobra.Command{
	Use:   "memories",
	Short: "Capture and browse your memories",
}

var memoryTitle string

var memoriesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Store a text memory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := appCtx.client.CreateTextMemory(cmd.Context(), api.CreateMemoryRequest{
			Content: strings.Join(args, " "),
			Title:   memoryTitle,
		})
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Memory %d stored.\n", mem.ID)
		return nil
	},
}

var memoriesVoiceCmd = &cobra.Command{
	Use:   "voice <file>",
	Short: "Upload a voice recording as a memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open recording: %w", err)
		}
		defer f.Close()

		mem, err := appCtx.client.UploadVoiceMemory(cmd.Context(), filepath.Base(args[0]), f, memoryTitle)
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Memory %d stored.\n", mem.ID)
		return nil
	},
}

var imageCaption string

var memoriesImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Upload an image as a memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		mem, err := appCtx.client.UploadImageMemory(cmd.Context(), filepath.Base(args[0]), f, imageCaption)
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Printf("Memory %d stored.\n", mem.ID)
		return nil
	},
}

var (
	memoriesLimit       int
	memoriesSkip        int
	memoriesContentType string
)

var memoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		memories, err := appCtx.client.Memories(cmd.Context(), api.MemoryQuery{
			Skip:        memoriesSkip,
			Limit:       memoriesLimit,
			ContentType: memoriesContentType,
		})
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		if len(memories) == 0 {
			fmt.Println("No memories yet.")
			return nil
		}

		for _, mem := range memories {
			content := mem.Content
			if len(content) > 70 {
				content = content[:67] + "..."
			}
			fmt.Printf("%4d  %-7s %s\n", mem.ID, mem.ContentType, content)
		}
		return nil
	},
}

var memoriesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search memories semantically",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := appCtx.client.SearchMemories(cmd.Context(), api.SearchRequest{
			Query: strings.Join(args, " "),
			Limit: memoriesLimit,
		})
		if err != nil {
			appCtx.flushNotices()
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		for _, res := range results {
			fmt.Printf("%.2f  %s\n", res.SimilarityScore, res.Content)
		}
		return nil
	},
}

var memoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a memory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid memory id %q", args[0])
		}

		if err := appCtx.client.DeleteMemory(cmd.Context(), id); err != nil {
			appCtx.flushNotices()
			return err
		}
		fmt.Println("Memory deleted.")
		return nil
	},
}

var memoriesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memory collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := appCtx.client.MemoryStats(cmd.Context())
		if err != nil {
			appCtx.flushNotices()
			return err
		}

		fmt.Printf("Total memories: %d\n", stats.TotalMemories)
		for kind, count := range stats.ByType {
			fmt.Printf("  %-10s %d\n", kind, count)
		}
		return nil
	},
}

func init() {
	memoriesAddCmd.Flags().StringVar(&memoryTitle, "title", "", "optional memory title")
	memoriesVoiceCmd.Flags().StringVar(&memoryTitle, "title", "", "optional memory title")
	memoriesImageCmd.Flags().StringVar(&imageCaption, "caption", "", "optional image caption")
	memoriesListCmd.Flags().IntVar(&memoriesLimit, "limit", 20, "maximum results")
	memoriesListCmd.Flags().IntVar(&memoriesSkip, "skip", 0, "results to skip")
	memoriesListCmd.Flags().StringVar(&memoriesContentType, "type", "", "filter by content type")
	memoriesSearchCmd.Flags().IntVar(&memoriesLimit, "limit", 10, "maximum results")

	memoriesCmd.AddCommand(memoriesAddCmd)
	memoriesCmd.AddCommand(memoriesVoiceCmd)
	memoriesCmd.AddCommand(memoriesImageCmd)
	memoriesCmd.AddCommand(memoriesListCmd)
	memoriesCmd.AddCommand(memoriesSearchCmd)
	memoriesCmd.AddCommand(memoriesDeleteCmd)
	memoriesCmd.AddCommand(memoriesStatsCmd)
}
