package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/QtravelPL/duckling/internal/logging"
	"github.com/QtravelPL/duckling/internal/model"
)

var (
	cfgFile string
	verbose bool
	logJSON bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "duckling",
	Short: "Duckling - structured entity extraction from text",
	Long: `Duckling extracts structured entities from natural language text:
numbers, ordinals, times, durations, distances and amounts of money,
among others.

Each entity carries its dimension, the exact matched span and a
resolved JSON value:

  duckling parse "see you on March 3 at 5pm"

Parsing is rule based and deterministic: the same text, reference time
and locale always produce the same entities.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Duckling.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("duckling v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.duckling/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "structured JSON log output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.duckling")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DUCKLING_*
	viper.SetEnvPrefix("DUCKLING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if err := logging.Initialize(verbose, logJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
	}
}

// loadConfig layers the config file and DUCKLING_* environment over
// the built-in defaults. Flags override the result per command.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("engine.locale"); v != "" {
		cfg.Engine.Locale = v
	}
	if viper.IsSet("engine.max_passes") {
		cfg.Engine.MaxPasses = viper.GetInt("engine.max_passes")
	}
	if viper.IsSet("engine.with_latent") {
		cfg.Engine.WithLatent = viper.GetBool("engine.with_latent")
	}
	if viper.IsSet("engine.dims") {
		cfg.Engine.Dims = viper.GetStringSlice("engine.dims")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("cache.memory_ttl") {
		cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	}
	if viper.IsSet("cache.disk_ttl") {
		cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl")
	}

	if viper.IsSet("concurrency.batch_workers") {
		cfg.Concurrency.BatchWorkers = viper.GetInt("concurrency.batch_workers")
	}

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if viper.IsSet("server.rate_per_second") {
		cfg.Server.RatePerSecond = viper.GetFloat64("server.rate_per_second")
	}
	if viper.IsSet("server.rate_burst") {
		cfg.Server.RateBurst = viper.GetInt("server.rate_burst")
	}
	if viper.IsSet("server.max_body_bytes") {
		cfg.Server.MaxBodyBytes = viper.GetInt64("server.max_body_bytes")
	}
	if viper.IsSet("server.read_timeout") {
		cfg.Server.ReadTimeout = viper.GetDuration("server.read_timeout")
	}
	if viper.IsSet("server.write_timeout") {
		cfg.Server.WriteTimeout = viper.GetDuration("server.write_timeout")
	}
	if viper.IsSet("server.shutdown_timeout") {
		cfg.Server.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")
	}

	if viper.IsSet("output.pretty") {
		cfg.Output.Pretty = viper.GetBool("output.pretty")
	}
	cfg.Output.Verbose = verbose || viper.GetBool("output.verbose")
	if viper.IsSet("output.trace") {
		cfg.Output.Trace = viper.GetBool("output.trace")
	}

	return cfg
}
