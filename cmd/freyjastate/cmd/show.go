package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored snapshot as YAML",
	Long: `Restore a stored snapshot and print its session state as a YAML
document suitable for editing and saving again. JSON and CBOR output are
available for other tools.

Example:
  freyjastate show 2rGmZ4y1mFuZ9p7Bq8Y4nKxNw3T
  freyjastate show 2rGmZ4y1mFuZ9p7Bq8Y4nKxNw3T -o cbor > session.cbor`,
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

		data, err := store.Read(id)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		state, err := decodeState(bytes.NewReader(data))
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return outputState(cmd.OutOrStdout(), state, format)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml, json or cbor")
}
