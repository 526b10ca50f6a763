package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a snapshot file as a new snapshot",
	Long: `Read a snapshot file, check it and store it under a new id.

Example:
  freyjastate import ./session.fss`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readSnapshotFile(args[0])
		if err != nil {
			return err
		}
		if _, err := validateSnapshot(data); err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Create(data)
		if err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as snapshot %s (%d bytes)\n", args[0], id, len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
