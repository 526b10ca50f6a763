package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/freyjastate/pkg/stream"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print a snapshot file as YAML",
	Long: `Restore the session state held in a snapshot file and print it as
YAML. With --check the file is only walked and its size reported.

Example:
  freyjastate dump ./session.fss
  freyjastate dump ./session.fss --check`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")

		if check {
			data, err := readSnapshotFile(args[0])
			if err != nil {
				return err
			}
			n, err := validateSnapshot(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid snapshot, %d bytes\n", args[0], n)
			return nil
		}

		reader, err := stream.NewFileReader(cfg.ReaderConfig(args[0]))
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer reader.Close()

		state, err := decodeState(reader)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return outputState(cmd.OutOrStdout(), state, format)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml, json or cbor")
	dumpCmd.Flags().Bool("check", false, "Only check the snapshot structure")
}
