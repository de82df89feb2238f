package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"waybill-tracker/internal/batch"
	"waybill-tracker/internal/config"
	"waybill-tracker/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A config file, when given, supplies the flag defaults
	cfg := config.Default()
	if path := configArg(os.Args[1:]); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			slog.Error("Failed to load config file", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	fs := ff.NewFlagSet("waybill-tracker")
	var (
		port        = fs.IntLong("port", cfg.Server.Port, "HTTP server port")
		dbPath      = fs.StringLong("db", cfg.Storage.DatabasePath, "Database file path")
		storagePath = fs.StringLong("storage", cfg.Storage.FilesPath, "Storage directory path")
		scannerType = fs.StringLong("scanner", cfg.Scanner.Type, "Scanner type: 'gemini' or 'ollama'")
		geminiKey   = fs.StringLong("gemini-key", cfg.Scanner.GeminiKey, "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", cfg.Scanner.GeminiModel, "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", cfg.Scanner.OllamaURL, "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", cfg.Scanner.OllamaModel, "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		authUser    = fs.StringLong("auth-user", cfg.Server.AuthUser, "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", cfg.Server.AuthPass, "Basic auth password (optional)")
		_           = fs.StringLong("config", "", "Path to YAML config file")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("WAYBILL_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := batch.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize scanner based on type
	var scanner scanning.Scanner
	switch *scannerType {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		scanner, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		scanner, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	defer scanner.Close()

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := batch.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	batchService := batch.NewService(db, scanner, store)

	// Initialize server
	basicAuth := batch.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := batch.NewServer(batchService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// configArg finds a --config value without a full flag parse, so the file
// can seed the defaults the real parse uses.
func configArg(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		}
	}
	return os.Getenv("WAYBILL_TRACKER_CONFIG")
}
