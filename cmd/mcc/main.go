package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mcc",
	Short: "Marketing Campaign Console",
	Long: `mcc generates marketing campaigns with a team of AI agents.

A campaign brief goes to the orchestrator agent, which returns platform
content and an SEO analysis. Graphics and a video brief can then be added
to the selected campaign. Campaigns and brand settings persist in the
workspace store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/config.yaml)")

	// Campaign lifecycle
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(editBlockCmd)
	rootCmd.AddCommand(exportCmd)

	// Enrichment
	rootCmd.AddCommand(graphicsCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(enrichCmd)

	// Settings and introspection
	brandCmd.AddCommand(brandShowCmd)
	brandCmd.AddCommand(brandSetCmd)
	rootCmd.AddCommand(brandCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(usageCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
