package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wasmregistry/codemap/internal/cmd/globals"
	"github.com/wasmregistry/codemap/internal/cmd/hints"
	"github.com/wasmregistry/codemap/internal/cmd/output"
	"github.com/wasmregistry/codemap/pkg/chain"
	"github.com/wasmregistry/codemap/pkg/constants"
	"github.com/wasmregistry/codemap/pkg/logging"
)

var (
	configFile   string
	registryFile string
	globalFlags  *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "CosmWasm Contract Registry CLI",
	Long: `Codemap maintains a curated registry of CosmWasm smart-contract
metadata and reconciles it against live chain state.

It validates the structure of the registry file and cross-references
every record against on-chain code info and governance-proposal history
served by Cosmos SDK LCD endpoints, reporting drift such as missing
entries, hash mismatches, and misattributed governance.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	// Set version information
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Pass context to root command
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		for _, h := range hints.ForError(err) {
			fmt.Fprintln(os.Stderr, h.String())
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.codemap.yaml)")
	rootCmd.PersistentFlags().StringVar(&registryFile, "registry", "", "registry file (default is contracts.json)")
	globalFlags = globals.AddFlags(rootCmd)

	// Bind flags to viper
	if err := viper.BindPFlag("registry.path", rootCmd.PersistentFlags().Lookup("registry")); err != nil {
		panic(fmt.Sprintf("Failed to bind registry flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".codemap" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".codemap")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up environment variable handling
	viper.AutomaticEnv() // Read in environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Built-in endpoints apply when neither config file nor env overrides them
	setConfigDefaults()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && globalFlags != nil && globalFlags.Verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Configure logging based on verbose flag and environment
	configureLogging()
}

// setConfigDefaults registers the built-in registry path and network
// endpoints with viper.
func setConfigDefaults() {
	viper.SetDefault("registry.path", constants.DefaultRegistryPath)
	viper.SetDefault("networks.mainnet.name", constants.DefaultMainnetName)
	viper.SetDefault("networks.mainnet.rest", constants.DefaultMainnetREST)
	viper.SetDefault("networks.testnet.name", constants.DefaultTestnetName)
	viper.SetDefault("networks.testnet.rest", constants.DefaultTestnetREST)
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	// Setup output format based on terminal detection
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}

	return nil
}

// registryPath resolves the registry file for this run: flag, then
// config file, then the built-in default.
func registryPath() string {
	return viper.GetString("registry.path")
}

// mainnetConfig resolves the mainnet endpoint configuration.
func mainnetConfig() chain.Config {
	return chain.Config{
		Name: viper.GetString("networks.mainnet.name"),
		REST: viper.GetString("networks.mainnet.rest"),
	}
}

// testnetConfig resolves the testnet endpoint configuration.
func testnetConfig() chain.Config {
	return chain.Config{
		Name: viper.GetString("networks.testnet.name"),
		REST: viper.GetString("networks.testnet.rest"),
	}
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	// Determine log level
	level := zerolog.InfoLevel
	if globalFlags != nil && globalFlags.Verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if globalFlags != nil && globalFlags.Quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	// Configure the logger
	config := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		NoColor:   globalFlags != nil && globalFlags.NoColor,
		AddCaller: level <= zerolog.DebugLevel,
	}

	// Use auto format detection if not specified
	if config.Format == "" {
		config.Format = "auto"
	}
	if config.Output == "" {
		config.Output = "stderr"
	}

	logging.Configure(config)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		loadEnvFile(envFile)
	}
}

// loadEnvFile loads a single .env file using godotenv.
func loadEnvFile(filename string) {
	// Use godotenv to load the file into the environment
	if err := godotenv.Load(filename); err == nil {
		// File loaded successfully
		if globalFlags != nil && globalFlags.Verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", filename)
		}
	}
}
