package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/pkg/reg"
)

var (
	// Global flags
	debug      bool
	quiet      bool
	jsonOut    bool
	yamlOut    bool
	configPath string
	bits       int

	// client is built on first use from the loaded config.
	client *reg.Client
	// runner, when set, replaces reg.exe. Tests point it at a fake.
	runner reg.Runner
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Delete and list Windows registry keys and values",
	Long: `regctl drives reg.exe to delete registry keys and values, clear keys,
and list subkeys. It works with any display language reg.exe uses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every reg.exe invocation to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.regkit/config.yaml)")
	rootCmd.PersistentFlags().
		IntVar(&bits, "bits", 0, "Registry view to use: 32 or 64 (default: the config, else native)")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// getClient loads the config and builds the client once per process.
func getClient() (*reg.Client, error) {
	if client != nil {
		return client, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if debug || cfg.Defaults.Debug {
		cfg.Defaults.Debug = true
		if err := logger.Init(logger.Options{Enabled: true, Output: os.Stderr, Level: slog.LevelDebug}); err != nil {
			return nil, err
		}
		logger.Debug("config loaded", "component", "regctl", "file", cfg.File, "program", cfg.Program)
	}

	c, err := reg.New(reg.Config{Program: cfg.Program, Runner: runner, Defaults: cfg.Defaults})
	if err != nil {
		return nil, err
	}
	client = c
	return client, nil
}

// callOptions turns the shared flags into per-call options.
func callOptions(cmd *cobra.Command) (*reg.Options, error) {
	opts := &reg.Options{}
	if cmd.Flags().Changed("bits") {
		if bits != 32 && bits != 64 {
			return nil, fmt.Errorf("--bits must be 32 or 64, got %d", bits)
		}
		opts.Bits = reg.Ptr(bits)
	}
	return opts, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// structured reports whether output goes through printResult.
func structured() bool { return jsonOut || yamlOut }

// printResult outputs v as JSON or YAML, whichever was asked for.
func printResult(v any) error {
	if yamlOut {
		return printYAML(v)
	}
	return printJSON(v)
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printYAML outputs data as YAML
func printYAML(v any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
