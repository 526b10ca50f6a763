package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Long: `List every stored snapshot with its creation time and size. Each
snapshot is walked without being restored; damaged ones are flagged.

Example:
  freyjastate list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshots")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintf(w, "ID\tCREATED\tBYTES\tSTATUS\n")
		for _, id := range ids {
			data, err := store.Read(id)
			if err != nil {
				return fmt.Errorf("failed to read snapshot %s: %w", id, err)
			}
			status := "ok"
			if _, err := validateSnapshot(data); err != nil {
				logger.Warn("damaged snapshot", "id", id, "error", err)
				status = "damaged"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id, id.Time().UTC().Format(time.RFC3339), len(data), status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
