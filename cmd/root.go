// Package cmd implements the command-line interface for dissect.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dissectlabs/dissect/internal/telemetry"
	"github.com/dissectlabs/dissect/internal/utils"
)

var (
	cfgFile        string
	verbose        bool
	debug          bool
	selfTrace      bool
	traceExporter  string
	traceEndpoint  string
	traceSample    float64
	rulesFile      string
	tracerShutdown func(context.Context) error
	logger         *zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dissect",
	Short: "Trace analysis for AI agent orchestrations",
	Long: `Dissect normalizes execution traces from agent orchestration
frameworks (OpenTelemetry, LangChain, CrewAI, AutoGen) into a single
call graph, finds the latency-critical path through it, and renders
the result for humans and tools.

Examples:
  dissect trace run.json                  # Analyze and summarize a trace
  dissect visualize run.json -t mermaid   # Render as a Mermaid flowchart
  dissect diff before.json after.json     # Compare two runs
  dissect check run.json --suite ci.yaml  # Run assertions against a trace
  dissect explore run.json                # Interactive explorer`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = utils.NewLogger(debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		// Set a global level as well for libraries using zerolog's package logger
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		zerolog.TimeFieldFormat = time.RFC3339

		selfTrace = viper.GetBool("trace")
		traceExporter = viper.GetString("trace_exporter")
		traceEndpoint = viper.GetString("trace_endpoint")
		traceSample = viper.GetFloat64("trace_sample")

		if selfTrace {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg := telemetry.Config{
				ServiceName:    "dissect",
				ServiceVersion: Version,
				Environment:    viper.GetString("environment"),
				Exporter:       traceExporter,
				Endpoint:       traceEndpoint,
				SampleRate:     traceSample,
				Debug:          debug,
			}

			tracerShutdown, err = telemetry.Setup(ctx, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("failed to set up tracer")
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerShutdown != nil {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			_ = tracerShutdown(ctx)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dissect.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug mode")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "custom classification rules file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&selfTrace, "trace", false, "trace dissect's own pipeline stages")
	rootCmd.PersistentFlags().StringVar(&traceExporter, "trace-exporter", "console", "trace exporter: console|otlp|file")
	rootCmd.PersistentFlags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP endpoint URL or file path (for file exporter)")
	rootCmd.PersistentFlags().Float64Var(&traceSample, "trace-sample", 1.0, "trace sample rate (0.0-1.0)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("rules", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))
	_ = viper.BindPFlag("trace_exporter", rootCmd.PersistentFlags().Lookup("trace-exporter"))
	_ = viper.BindPFlag("trace_endpoint", rootCmd.PersistentFlags().Lookup("trace-endpoint"))
	_ = viper.BindPFlag("trace_sample", rootCmd.PersistentFlags().Lookup("trace-sample"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".dissect")
	}

	viper.SetEnvPrefix("DISSECT")
	viper.AutomaticEnv()

	viper.SetDefault("trace_exporter", "console")
	viper.SetDefault("trace_sample", 1.0)
	viper.SetDefault("environment", "dev")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetLogger returns the configured logger
func GetLogger() *zerolog.Logger {
	if logger == nil {
		if l, err := utils.NewLogger(false); err == nil {
			logger = l
		} else {
			// Fallback to a basic stderr logger
			l := zerolog.New(os.Stderr).With().Timestamp().Logger()
			logger = &l
		}
	}
	return logger
}
