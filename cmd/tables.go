package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// tablesCmd lists the tables a run would visit.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the new database and their exclusion status",
	RunE:  runTables,
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := openSession(ctx, configDir, nil, false)
	if err != nil {
		return err
	}
	defer s.Close()

	statuses, err := s.engine.Tables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSTATUS\tPATTERN")
	excluded := 0
	for _, st := range statuses {
		if st.Excluded {
			excluded++
			fmt.Fprintf(w, "%s\texcluded\t%s\n", st.Table, st.ExcludedBy)
			continue
		}
		fmt.Fprintf(w, "%s\tcompared\t\n", st.Table)
	}
	fmt.Fprintf(w, "\n%d tables, %d excluded\n", len(statuses), excluded)
	return w.Flush()
}
