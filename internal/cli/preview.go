package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"card-synth/internal/config"
	"card-synth/internal/dataset"
	"card-synth/internal/preview"
)

func newPreviewCmd(configPath *string) *cobra.Command {
	var (
		count int
		dest  string
	)

	cmd := &cobra.Command{
		Use:   "preview [partition]",
		Short: "Render annotation overlays for generated images",
		Long:  "preview draws the bounding boxes from a partition's label files back over the corresponding images, so the dataset can be inspected visually.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			partition := dataset.PartitionTrain
			if len(args) == 1 {
				partition = args[0]
			}
			switch partition {
			case dataset.PartitionTrain, dataset.PartitionValid, dataset.PartitionTest:
			default:
				return fmt.Errorf("unknown partition %q", partition)
			}

			if dest == "" {
				dest = filepath.Join(cfg.OutputDir, "preview")
			}

			logger := loggerFromContext(cmd.Context())
			return preview.RenderSamples(cfg.OutputDir, partition, count, cfg.Classes, dest, logger)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "maximum number of images to render")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "directory for rendered overlays (default <output>/preview)")

	return cmd
}
