package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored snapshot",
	Long: `Delete a snapshot from the snapshot store.

Example:
  freyjastate delete 2rGmZ4y1mFuZ9p7Bq8Y4nKxNw3T`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
