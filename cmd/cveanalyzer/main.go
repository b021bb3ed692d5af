package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/satwikbh/CveAnalyzer/config"
	"github.com/satwikbh/CveAnalyzer/fs"
	"github.com/satwikbh/CveAnalyzer/gemini"
	"github.com/satwikbh/CveAnalyzer/ingest"
	"github.com/satwikbh/CveAnalyzer/nvd"
	"github.com/satwikbh/CveAnalyzer/query"
	cveslog "github.com/satwikbh/CveAnalyzer/slog"
	"github.com/satwikbh/CveAnalyzer/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// Pick up GEMINI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config. Loaded in Run() when nil.
	Config *config.AppConfig

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService cveanalyzer.RecordService
	QueryService  cveanalyzer.QueryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.Config == nil {
		cfg, _, err := config.LoadDefault()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		m.Config = cfg
	}
	if m.DBPath == "" {
		m.DBPath = defaultDBPath(m.Config)
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cveanalyzer"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cveanalyzer --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Take the command name from the parsed context rather than args[0],
	// which may be a global flag like --verbose.
	cmd := kongCtx.Command()
	if i := strings.IndexByte(cmd, ' '); i >= 0 {
		cmd = cmd[:i]
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CVEANALYZER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RecordService = sqlite.NewRecordService(m.DB)
	if cli.Verbose {
		m.RecordService = cveslog.NewLoggingRecordService(m.RecordService, logger)
	}
	deps.DB = m.DB
	deps.Records = m.RecordService
	deps.Store = fs.NewFeedStore(feedCacheDir(m.Config))

	// Wire command-specific dependencies based on command
	if cmd == "fetch" {
		deps.Feeds = nvd.NewClient(
			nvd.WithBaseURL(m.Config.Feeds.BaseURL),
			nvd.WithRequestsPerMinute(m.Config.Feeds.RequestsPerMinute),
		)
	}

	if cmd == "query" || cmd == "ingest" {
		apiKey := os.Getenv(m.Config.Gemini.APIKeyEnv)
		if apiKey == "" {
			fmt.Fprintf(stderr, "%s environment variable not set. Get an API key at https://aistudio.google.com/apikey\n", m.Config.Gemini.APIKeyEnv)
			return fmt.Errorf("%s not set. Get a key at https://aistudio.google.com/apikey", m.Config.Gemini.APIKeyEnv)
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Check your %s is valid\n", m.Config.Gemini.APIKeyEnv)
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var completer cveanalyzer.Completer = gemini.NewCompleter(client, m.Config.Gemini.CompletionModel)
		var embedder cveanalyzer.Embedder = gemini.NewEmbedder(client, m.Config.Gemini.EmbeddingModel)
		if cli.Verbose {
			completer = cveslog.NewLoggingCompleter(completer, logger)
			embedder = cveslog.NewLoggingEmbedder(embedder, logger)
		}

		if cmd == "query" {
			extractor := &query.Extractor{Completer: completer}
			m.QueryService = &query.Pipeline{
				Extractor: extractor,
				Resolver: &query.Resolver{
					Records:   deps.Records,
					Embedder:  embedder,
					Extractor: extractor,
					TopK:      m.Config.Query.TopK,
				},
				Responder: &query.Responder{Completer: completer},
				Logger:    logger,
			}
			deps.Queries = m.QueryService
		}

		if cmd == "ingest" {
			var feeds cveanalyzer.FeedSource = nvd.NewClient(
				nvd.WithBaseURL(m.Config.Feeds.BaseURL),
				nvd.WithRequestsPerMinute(m.Config.Feeds.RequestsPerMinute),
			)
			if cli.Ingest.Offline {
				feeds = deps.Store
			}
			deps.Ingestor = &ingest.Ingestor{
				Feeds:     feeds,
				Embedder:  embedder,
				Records:   deps.Records,
				Logger:    logger,
				BatchSize: m.Config.Ingest.BatchSize,
				ChunkSize: m.Config.Ingest.ChunkSize,
			}
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath(cfg *config.AppConfig) string {
	if path := os.Getenv("CVEANALYZER_DB"); path != "" {
		return path
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cveanalyzer.db"
	}
	dir := filepath.Join(home, ".cveanalyzer")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cveanalyzer.db")
}

func feedCacheDir(cfg *config.AppConfig) string {
	if cfg != nil && cfg.Feeds.CacheDir != "" {
		return cfg.Feeds.CacheDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "feeds"
	}
	return filepath.Join(home, ".cveanalyzer", "feeds")
}
