package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"card-synth/internal/config"
	"card-synth/internal/dataset"
)

// generateOpts holds the command-line overrides for the generate command.
type generateOpts struct {
	cards       string // card sprite directory
	backgrounds string // background image directory
	output      string // dataset output root
	count       int    // total images to generate
	seed        int64  // random seed; 0 means time-based
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if opts.cards != "" {
				cfg.CardsDir = opts.cards
			}
			if opts.backgrounds != "" {
				cfg.BackgroundsDir = opts.backgrounds
			}
			if opts.output != "" {
				cfg.OutputDir = opts.output
			}
			if opts.count > 0 {
				cfg.TotalImages = opts.count
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			seed := opts.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			logger := loggerFromContext(cmd.Context())
			logger.Debug("seeded generator", "seed", seed)

			rng := rand.New(rand.NewSource(seed))
			start := time.Now()

			n, err := dataset.New(cfg, logger).Run(rng)
			if err != nil {
				return err
			}

			elapsed := time.Since(start)
			logger.Info("done", "images", n, "elapsed", elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.cards, "cards", "", "card sprite directory (overrides config)")
	cmd.Flags().StringVar(&opts.backgrounds, "backgrounds", "", "background directory (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "dataset output directory (overrides config)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "total images to generate (overrides config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for reproducible runs (0 = time-based)")

	return cmd
}
