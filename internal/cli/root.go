// Package cli implements the card-synth command-line interface: a generate
// command that produces a synthetic dataset and a preview command that
// renders annotations back over generated images.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"card-synth/internal/version"
)

// Execute runs the card-synth CLI and returns an error if any command fails.
func Execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "card-synth",
		Short:        "card-synth composites labeled card sprites into detector training images",
		Long:         "card-synth generates synthetic object-detection training data by compositing randomly transformed card sprites onto background photos, emitting pixel-accurate bounding-box annotations alongside each image.",
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newPreviewCmd(&configPath))

	return root.ExecuteContext(context.Background())
}
