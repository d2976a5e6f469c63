// Command spectrum renders the Reverie House spectrum in a terminal
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/reverie-spectrum/config"
)

var (
	configPath string
	sourceURL  string
	sourceFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "3D spectrum viewer for Reverie House dreamers",
	Long: `Plots every dreamer at the position derived from their six spectrum axes
(entropy/oblivion, liberty/authority, receptive/skeptic), classifies them into
octants and zones, and renders the result as a rotatable 3D scene.

Run without a subcommand to start the interactive viewer.`,
	SilenceUsage: true,
	RunE:         runView,
}

// loadConfig reads the config file and applies persistent flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Source.URL, cfg.Source.File = sourceURL, ""
	}
	if flags.Changed("file") {
		cfg.Source.File, cfg.Source.URL = sourceFile, ""
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = debug
	}
	if cfg.Source.URL == "" && cfg.Source.File == "" {
		return config.Config{}, fmt.Errorf("%w: no data source, set --url or --file", config.ErrInvalid)
	}
	return cfg, cfg.Validate()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&sourceURL, "url", "", "community API base URL")
	pf.StringVar(&sourceFile, "file", "", "local dataset JSON document, reloaded on change")
	pf.BoolVar(&debug, "debug", false, "write debug logs to the log directory")
	rootCmd.MarkFlagsMutuallyExclusive("url", "file")

	rootCmd.AddCommand(viewCmd, classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
