package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/freyjastate/pkg/session"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save <state.yaml>",
	Short: "Save a session state as a new snapshot",
	Long: `Read a session state document in YAML, encode it and store it as a
snapshot. With --id the existing snapshot is replaced instead.

Example:
  freyjastate save session.yaml
  freyjastate save session.yaml --id 2rGmZ4y1mFuZ9p7Bq8Y4nKxNw3T`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idArg, _ := cmd.Flags().GetString("id")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read state document: %w", err)
		}
		var doc session.Document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to parse state document: %w", err)
		}
		state, err := doc.State()
		if err != nil {
			return err
		}

		data, err := encodeState(state)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if idArg != "" {
			id, err := parseID(idArg)
			if err != nil {
				return err
			}
			if err := store.Update(id, data); err != nil {
				return fmt.Errorf("failed to update snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated snapshot %s (%d bytes)\n", id, len(data))
			return nil
		}

		id, err := store.Create(data)
		if err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		logger.Debug("snapshot saved", "id", id, "bytes", len(data))
		fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s (%d bytes)\n", id, len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().String("id", "", "Replace the snapshot with this id")
}
