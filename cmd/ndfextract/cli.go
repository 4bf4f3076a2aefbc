package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/warnodata/extractor/internal/config"
)

type rootOptions struct {
	configDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ndfextract",
		Short: "Extract unit and weapon statistics from WARNO descriptor trees",
		Long: `ndfextract reads parsed descriptor dumps (JSON or KDL), resolves every unit's
weapons, ammunition, missiles and smoke, and writes one flat record per unit to
the configured storage backend.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config", ".", "Directory containing "+config.ConfigFileName)
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newExtractCmd(), newInspectCmd(), newVersionCmd())
	return rootCmd
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <pattern>...",
		Short: "Extract every unit from the given descriptor dumps",
		Long: `Extract loads every file matching the given patterns (doublestar globs such as
'dumps/**/*.json'), extracts all units in descriptor order and stores the
result. Units that fail to extract are logged and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.String("filter", "", "expr predicate selecting units to keep, e.g. 'Category == \"TNK\"'")
	flags.Int("workers", 0, "Number of concurrent extraction workers")
	flags.String("storage", "", "Storage backend: memory, sqlite or postgres")
	flags.String("output", "", "Output directory for the memory backend")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <descriptor> <pattern>...",
		Short: "Print one extracted unit as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], args[1:])
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ndfextract %s (built %s)\n", Version, BuildDate)
		},
	}
}

// flagKeys maps command-line flags onto the config keys they override.
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"filter":    "filter",
	"workers":   "workers",
	"storage":   "storage.type",
	"output":    "storage.memory.outputDir",
}

// loadConfig reads the config file, falling back to defaults when there is
// none, then applies any flags the user set.
func loadConfig(cmd *cobra.Command, opts *rootOptions) error {
	if err := config.Load(opts.configDir); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		viper.Set(key, f.Value.String())
	}
	return nil
}
