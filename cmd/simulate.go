package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/registrarlab/regsim/core/allocator"
	"github.com/registrarlab/regsim/core/engine"
	"github.com/registrarlab/regsim/core/scheduler"
	"github.com/registrarlab/regsim/core/workload"
	"github.com/registrarlab/regsim/infra/logger"
)

var (
	simScheduler string
	simAllocator string
	simScenario  string
	simDuration  int
	simSeed      int64
	simCatalog   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single simulation and print the report",
	RunE:  simulateOnce,
}

func init() {
	simulateCmd.Flags().StringVar(&simScheduler, "scheduler", string(scheduler.KindFCFS), "scheduling strategy")
	simulateCmd.Flags().StringVar(&simAllocator, "allocator", string(allocator.KindCollegeBased), "allocation strategy")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", string(workload.ScenarioBaseline), "workload scenario")
	simulateCmd.Flags().IntVar(&simDuration, "duration", 60, "simulation duration in minutes")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed, 0 for nondeterministic")
	simulateCmd.Flags().StringVar(&simCatalog, "catalog", "", "optional scenario catalog file")
	rootCmd.AddCommand(simulateCmd)
}

func simulateOnce(cmd *cobra.Command, args []string) error {
	opts := []engine.Option{engine.WithLogger(logger.New("simulate-command"))}
	if simSeed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewSource(simSeed))))
	}
	if simCatalog != "" {
		catalog, err := workload.LoadCatalog(simCatalog)
		if err != nil {
			return fmt.Errorf("scenario catalog: %w", err)
		}
		opts = append(opts, engine.WithProfiles(catalog))
	}

	eng := engine.New(scheduler.Kind(simScheduler), allocator.Kind(simAllocator), opts...)
	report, err := eng.Run(workload.Scenario(simScenario), simDuration)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
