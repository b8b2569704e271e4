package main

import (
	"fmt"

	"github.com/kubishi/ovp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options holds the global flags and the state built from them.
type options struct {
	output  string
	verbose bool
	dataDir string

	logger *zap.Logger
	lex    *ovp.Lexicon
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ovp",
		Short: "Owens Valley Paiute sentence builder",
		Long: `ovp resolves grammatical choices, assembles Owens Valley Paiute sentences,
generates random sentences and maps simple English clause structures onto
Paiute selections.

Selections are given with repeated --set field=value flags or read from a
JSON or YAML file with --input.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.output)
			}

			config := zap.NewProductionConfig()
			config.OutputPaths = []string{"stderr"}
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			opts.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if opts.dataDir == "" {
				opts.lex, err = ovp.Embedded(ovp.WithLogger(opts.logger))
			} else {
				opts.lex, err = ovp.New(opts.dataDir, ovp.WithLogger(opts.logger))
			}
			if err != nil {
				return fmt.Errorf("load lexicon: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", "", "Lexicon data directory (default: built-in tables)")

	rootCmd.AddCommand(
		newChoicesCmd(opts),
		newSentenceCmd(opts),
		newRandomCmd(opts),
		newDescribeCmd(opts),
		newTranslateCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}
