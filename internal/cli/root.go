package cli

import (
	"github.com/spf13/cobra"

	"github.com/schoolhub/registrar/internal/bootstrap"
)

var (
	version = "dev"

	cfgFile   string
	dbPath    string
	logLevel  string
	logPretty bool

	app *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "School administration over a local SQLite store",
	Long: `registrar manages students, instructors, courses, and registrations in a
local SQLite database. The full state can be exported as a JSON snapshot,
replayed back in, dumped to CSV, or backed up as a database copy.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
	PersistentPostRun: teardownApp,
}

// setupApp loads configuration, folds in command-line overrides, opens
// the store, and wires the service graph every subcommand runs against.
func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap.LoadConfigAndSetupLogger(cfgFile)
	if err != nil {
		return err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("db") {
		cfg.Database.Path = dbPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("pretty") {
		cfg.Logging.Pretty = logPretty
	}
	bootstrap.ConfigureLogger(cfg)

	app, err = bootstrap.NewApp(cmd.Context(), cfg)
	return err
}

func teardownApp(cmd *cobra.Command, args []string) {
	if app != nil {
		app.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml",
		"path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"path to the SQLite database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false,
		"human-readable log output instead of JSON")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
