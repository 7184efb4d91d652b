package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Bama-S/capec-rel/internal/config"
	"github.com/Bama-S/capec-rel/internal/ingest"
	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/service"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

// Flag defaults, also used to tell "unset" from "set to the default".
const (
	defaultData     = "parsed_relations_output.csv"
	defaultMode     = string(models.ModeLenient)
	defaultLogLevel = "warn"
)

var (
	flagData     string
	flagMode     string
	flagFmt      string
	flagLogLevel string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("capec-rel version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}
	return fmt.Sprintf("capec-rel version %s", config.Version)
}

type configFile struct {
	Data     string `yaml:"data"`
	Mode     string `yaml:"mode"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "capec-rel",
		Short:   "capec-rel: explore CAPEC attack-pattern relationships",
		Version: versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolveConfig()
			if _, err := models.ParseModeFrom(flagMode); err != nil {
				return err
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagData, "data", defaultData, "Relation table CSV (env: CAPEC_DATA)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", defaultMode, "Parse mode: lenient|strict (env: CAPEC_PARSE_MODE)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "Log level (env: LOG_LEVEL)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSubgraphCmd())
	rootCmd.AddCommand(newRootsCmd())
	rootCmd.AddCommand(newLeavesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDoctorCmd())

	return rootCmd
}

// configPath returns ~/.capec-rel/config.yaml, or "" without a home directory.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".capec-rel", "config.yaml")
}

func readConfigFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user config path.
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagData == defaultData {
		if v := os.Getenv("CAPEC_DATA"); v != "" {
			flagData = v
		}
	}
	if flagMode == defaultMode {
		if v := os.Getenv("CAPEC_PARSE_MODE"); v != "" {
			flagMode = v
		}
	}
	if flagLogLevel == defaultLogLevel {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			flagLogLevel = v
		}
	}

	path := configPath()
	if path == "" {
		return
	}
	cfg, err := readConfigFile(path)
	if err != nil {
		return
	}
	if flagData == defaultData && cfg.Data != "" {
		flagData = cfg.Data
	}
	if flagMode == defaultMode && cfg.Mode != "" {
		flagMode = cfg.Mode
	}
	if flagFmt == "json" && cfg.Format != "" {
		flagFmt = cfg.Format
	}
	if flagLogLevel == defaultLogLevel && cfg.LogLevel != "" {
		flagLogLevel = cfg.LogLevel
	}
}

// newLogger builds the process logger. Servers log JSON; the CLI logs text.
func newLogger(level string, jsonFormat bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return log, nil
}

// loadService reads the relation table named by --data and builds the query engine.
func loadService(ctx context.Context, log *logrus.Logger) (*service.QueryService, *ingest.Report, error) {
	mode, err := models.ParseModeFrom(flagMode)
	if err != nil {
		return nil, nil, err
	}

	mg, report, err := ingest.Load(ctx, flagData, mode, log)
	if err != nil {
		return nil, nil, err
	}

	svc, err := service.NewQueryService(mg, log)
	if err != nil {
		return nil, nil, err
	}

	return svc, report, nil
}

// cliService builds a text logger and the query engine for one-shot commands.
func cliService(ctx context.Context) (*service.QueryService, error) {
	log, err := newLogger(flagLogLevel, false)
	if err != nil {
		return nil, err
	}

	svc, _, err := loadService(ctx, log)
	return svc, err
}
