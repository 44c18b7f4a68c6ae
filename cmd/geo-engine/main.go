// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the geo-engine CLI.
//
// With no subcommand, geo-engine runs one batch pass: harvest questions,
// generate FAQ pages and a sitemap, and publish them. Subcommands expose
// the individual stages and the long-running scheduler.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geo-engine/internal/logging"
	"github.com/pdiddy/geo-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by the root command's PersistentPreRunE.
var (
	cfg    types.Config
	logger = zap.NewNop()
)

// rootCmd is the base command for the geo-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "geo-engine",
	Short: "Generate AI-search-optimised FAQ pages for a medical scribe site",
	Long: `geo-engine harvests the questions people ask about medical scribes,
answers each one from a fixed set of templates, attaches citations from a
catalog of credible sources, and renders static HTML pages with structured
data and a sitemap.

Run without a subcommand to execute one batch pass. Use "rewrite" to refresh
the homepage, "schedule" to run both on an interval, and "workflow" to emit a
GitHub Actions workflow that runs the batch twice a day.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(c.Logging)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runBatch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./geo-engine.yaml or $XDG_CONFIG_HOME/geo-engine/geo-engine.yaml)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	viper.SetConfigType("yaml")
	if err := setDefaults(); err != nil {
		fmt.Fprintln(os.Stderr, "Registering defaults:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("geo-engine")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "geo-engine"))
	}

	viper.SetEnvPrefix("GEO_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config:", err)
		}
	}
}

// setDefaults registers every key of types.DefaultConfig as a viper
// default. Defaults survive ReadInConfig, which the config watcher calls on
// every edit, and make each key visible to AutomaticEnv.
func setDefaults() error {
	data, err := yaml.Marshal(types.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parsing defaults: %w", err)
	}
	for key, value := range flattenKeys("", tree) {
		viper.SetDefault(key, value)
	}
	return nil
}

// flattenKeys maps nested keys to dotted viper keys. Lists are leaves.
func flattenKeys(prefix string, tree map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			for sk, sv := range flattenKeys(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// loadConfig decodes the merged viper settings. Every default is
// registered with viper, so decoding starts from a zero Config.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if c.Content.MaxQuestions <= 0 {
		c.Content.MaxQuestions = types.DefaultMaxQuestions
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
