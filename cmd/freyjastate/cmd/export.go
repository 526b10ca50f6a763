package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a stored snapshot to a file",
	Long: `Copy a stored snapshot byte for byte into a file. The snapshot is
checked before anything is written.

Example:
  freyjastate export 2rGmZ4y1mFuZ9p7Bq8Y4nKxNw3T ./session.fss`,
	Args: cobra.ExactArgs(2),
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

		data, err := store.Read(id)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if _, err := validateSnapshot(data); err != nil {
			return err
		}
		if err := writeSnapshotFile(args[1], data); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported snapshot %s to %s (%d bytes)\n", id, args[1], len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
