package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dbcompare/core/database"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for compare command
	compareTable string
)

// compareCmd runs a comparison.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the old database against the new one",
	Long: `Compares every user table of the new database that no exclusion pattern
matches. For each table the rows of both sides are fingerprinted and the old
rows without an identical new row are counted.

Examples:
  # Full run
  dbcompare compare

  # Single table, exclusions are ignored
  dbcompare compare --table dbo.Customers`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareTable, "table", "", "Compare only this table (schema.table)")
	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	s, err := openSession(ctx, configDir, out, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if compareTable != "" {
		table := database.ParseTable(compareTable, defaultSchema(s.cfg.Database.New.Driver))
		res := s.engine.CompareTable(ctx, table)
		if res.Failed() {
			return fmt.Errorf("failed to compare %s: %w", table, res.Err)
		}
		fmt.Fprintf(out, "%s mismatches: %s\n", table, humanize.Comma(res.Mismatches))
		return nil
	}

	summary, err := s.engine.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		s.logger.Warn("Some tables could not be compared", zap.Int("failed", summary.Failed))
	}
	return nil
}

// defaultSchema is the schema assumed for a table given without one.
func defaultSchema(driver string) string {
	switch driver {
	case database.DriverPostgres:
		return "public"
	case database.DriverSQLite:
		return "main"
	case database.DriverSQLServer:
		return "dbo"
	default:
		return ""
	}
}
