package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stitchd-io/stitchd/internal/cli/output"
	"github.com/stitchd-io/stitchd/internal/cli/prompt"
	"github.com/stitchd-io/stitchd/pkg/catalog/store"
	"github.com/stitchd-io/stitchd/pkg/config"
	"github.com/stitchd-io/stitchd/pkg/maintenance"
)

var (
	sweepDryRun bool
	sweepYes    bool
	sweepOutput string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a one-shot orphan sweep",
	Long: `Run a single orphan sweep against the configured catalog database.

The sweep computes reachability from provider root edges, deletes every
entity no root can reach (together with its stitched row), and flags the
surviving direct children of deleted entities for reprocessing. The whole
sweep runs inside one database transaction.

Deletion is destructive, so the command asks for confirmation unless
--yes or --dry-run is given.

Examples:
  # Preview what a sweep would remove
  stitchd sweep --dry-run

  # Run a sweep without the confirmation prompt
  stitchd sweep --yes

  # Machine-readable statistics
  stitchd sweep --yes --output json`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "Compute statistics without deleting anything")
	sweepCmd.Flags().BoolVarP(&sweepYes, "yes", "y", false, "Skip the confirmation prompt")
	sweepCmd.Flags().StringVarP(&sweepOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(sweepOutput)
	if err != nil {
		return err
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	if !sweepDryRun {
		confirmed, err := prompt.ConfirmWithForce("Delete all unreachable catalog entities?", sweepYes)
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("Aborted")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	catalogStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog store: %w", err)
	}
	defer func() { _ = catalogStore.Close() }()

	sweeper := maintenance.NewSweeper(catalogStore, nil, maintenance.SweeperConfig{
		DryRun:     sweepDryRun,
		PruneEdges: cfg.Maintenance.ShouldPruneEdges(),
	})

	stats, err := sweeper.RunOnce(context.Background())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, stats)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, stats)
	default:
		if sweepDryRun {
			fmt.Println("\nSweep (dry run):")
		} else {
			fmt.Println("\nSweep completed:")
		}
		return output.SimpleTable(os.Stdout, [][2]string{
			{"  Entities scanned", fmt.Sprintf("%d", stats.EntitiesScanned)},
			{"  Edges scanned", fmt.Sprintf("%d", stats.EdgesScanned)},
			{"  Entities deleted", fmt.Sprintf("%d", stats.EntitiesDeleted)},
			{"  Children marked", fmt.Sprintf("%d", stats.EntitiesMarked)},
			{"  Edges pruned", fmt.Sprintf("%d", stats.EdgesPruned)},
		})
	}
}
