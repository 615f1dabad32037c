package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cogniscreen/cogniscreen/internal/api"
	"github.com/cogniscreen/cogniscreen/internal/genai"
	"github.com/cogniscreen/cogniscreen/internal/lockfile"
	"github.com/cogniscreen/cogniscreen/internal/store"
	"github.com/cogniscreen/cogniscreen/internal/util"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for CogniScreen state data
	DefaultStateDir = "/var/lib/cogniscreen"
	// DefaultFeedbackFileName is the default feedback CSV filename
	DefaultFeedbackFileName = "feedback.csv"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	// One instance per state directory: the feedback file must have a
	// single owning process on this host.
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to lock state directory", "error", err, "state_dir", *flags.stateDir)
		os.Exit(1)
	}
	defer lock.Release()

	storeOpts := buildStoreOptions(flags)
	genaiOpts := buildGenAIOptions(flags)
	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping CogniScreen with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.feedbackDSN != "", "api_addr", *flags.apiAddr)
	if err := api.Run(storeOpts, genaiOpts, apiOpts); err != nil {
		slog.Error("CogniScreen failed to run", "error", err)
		lock.Release()
		os.Exit(1)
	}
	slog.Info("CogniScreen exited successfully")
}

// Config holds environment configuration
type Config struct {
	FeedbackDSN string
	StateDir    string
	OpenAIKey   string
	APIAddr     string
}

// Flags holds command line flag values
type Flags struct {
	stateDir    *string
	feedbackDSN *string
	openaiKey   *string
	apiAddr     *string
}

// initializeLogger sets up structured logging. COGNISCREEN_DEBUG enables
// debug-level output.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("COGNISCREEN_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		FeedbackDSN: os.Getenv("COGNISCREEN_FEEDBACK_DSN"),
		StateDir:    os.Getenv("COGNISCREEN_STATE_DIR"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		APIAddr:     os.Getenv("API_ADDR"),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No COGNISCREEN_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// Without a DSN, feedback goes to the CSV file in the state directory,
	// matching the historical feedback.csv layout.
	if config.FeedbackDSN == "" {
		config.FeedbackDSN = filepath.Join(config.StateDir, DefaultFeedbackFileName)
		slog.Debug("No feedback DSN provided, defaulting to CSV file", "csv_path", config.FeedbackDSN)
	}

	slog.Debug("environment variables loaded",
		"COGNISCREEN_FEEDBACK_DSN_SET", config.FeedbackDSN != "",
		"COGNISCREEN_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:    flag.String("state-dir", config.StateDir, "state directory for CogniScreen data (overrides $COGNISCREEN_STATE_DIR)"),
		feedbackDSN: flag.String("feedback-dsn", config.FeedbackDSN, "feedback store DSN: Postgres URL, SQLite path, or .csv path (overrides $COGNISCREEN_FEEDBACK_DSN)"),
		openaiKey:   flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for the adaptive follow-up router (overrides $OPENAI_API_KEY)"),
		apiAddr:     flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"feedbackDSN_set", *flags.feedbackDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr)

	// Follow the state directory when the DSN still points at the default
	// CSV location but the state dir was overridden on the command line.
	if *flags.feedbackDSN == filepath.Join(config.StateDir, DefaultFeedbackFileName) && *flags.stateDir != config.StateDir {
		*flags.feedbackDSN = filepath.Join(*flags.stateDir, DefaultFeedbackFileName)
		slog.Debug("Updated feedback DSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// buildStoreOptions constructs feedback store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.feedbackDSN == "" {
		slog.Debug("No feedback DSN provided, will use in-memory store")
		return storeOpts
	}
	switch store.DetectDSNType(*flags.feedbackDSN) {
	case "postgres":
		slog.Debug("Detected PostgreSQL DSN, configuring Postgres feedback store")
		storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.feedbackDSN))
	case "csv":
		slog.Debug("Detected CSV path, configuring CSV feedback store", "csv_path", *flags.feedbackDSN)
		storeOpts = append(storeOpts, store.WithCSVPath(*flags.feedbackDSN))
	default:
		slog.Debug("Detected SQLite DSN, configuring SQLite feedback store", "db_path", *flags.feedbackDSN)
		storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.feedbackDSN))
	}
	return storeOpts
}

// buildGenAIOptions constructs GenAI configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	var genaiOpts []genai.Option
	if *flags.openaiKey != "" {
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.openaiKey))
	}
	return genaiOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	return apiOpts
}
