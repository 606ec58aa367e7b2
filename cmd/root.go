package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/bookdice/internal/book"
	"github.com/lepinkainen/bookdice/internal/config"
	"github.com/lepinkainen/bookdice/internal/cover"
	"github.com/lepinkainen/bookdice/internal/export"
	"github.com/lepinkainen/bookdice/internal/googlebooks"
	"github.com/lepinkainen/bookdice/internal/history"
	"github.com/lepinkainen/bookdice/internal/ratelimit"
	"github.com/lepinkainen/bookdice/internal/tui"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

var (
	stdout    io.Writer = os.Stdout
	runBrowse           = tui.Run
	coverHTTP cover.HTTPDoer
)

// CLI represents the complete command structure for the bookdice application
type CLI struct {
	// Global flags
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFile  string `help:"Write logs to this file (browse discards logs otherwise)" type:"path"`

	// History flags
	RecordHistory bool   `help:"Record every picked book in the history database" negatable:"" default:"${history_enabled}"`
	HistoryDB     string `help:"Path to history SQLite database file" default:"${history_db}"`

	Browse  BrowseCmd       `cmd:"" default:"withargs" help:"Search random books interactively (default)"`
	Pick    PickCmd         `cmd:"" help:"Print one random book for a subject"`
	History history.ListCmd `cmd:"" help:"List previously picked books"`
}

// BrowseCmd represents the interactive search screen
type BrowseCmd struct {
	Subject string `arg:"" optional:"" help:"Subject to pre-fill the search box with"`
}

// PickCmd represents the one-shot pick command
type PickCmd struct {
	Subject    string `arg:"" help:"Subject to pick a book from"`
	Format     string `short:"f" help:"Output format" enum:"text,json,markdown,md" default:"text"`
	CoverDir   string `help:"Download the cover image into this directory" type:"path"`
	CoverWidth int    `help:"Maximum width of the saved cover in pixels" default:"600"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(os.Stderr, slog.LevelInfo)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bookdice"),
		kong.Description("Pick a random book about any subject from Google Books."),
		kong.UsageOnError(),
		configVars(),
	)

	closeLog, err := cli.setupLogging(kctx.Command())
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	updateGlobalConfig(&cli)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

// configVars exposes config values as flag defaults.
func configVars() kong.Vars {
	return kong.Vars{
		"history_enabled": strconv.FormatBool(config.HistoryEnabled),
		"history_db":      config.HistoryDBFile,
	}
}

func initConfig() error {
	config.SetDefaults()

	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	// Enable environment variable support
	viper.SetEnvPrefix("bookdice")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// The API key keeps Google's conventional variable name
	if err := viper.BindEnv("api.key", "GOOGLE_BOOKS_API_KEY", "BOOKDICE_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/bookdice")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Debug("Config file not found, using defaults and environment")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	config.SetHistory(cli.RecordHistory, cli.HistoryDB)
}

// setupLogging applies the log flags. The browse screen owns the terminal,
// so its logs go to --log-file or nowhere.
func (c *CLI) setupLogging(command string) (func(), error) {
	level := parseLevel(c.LogLevel)

	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return func() {}, fmt.Errorf("failed to open log file: %w", err)
		}
		initLogging(f, level)
		return func() { _ = f.Close() }, nil
	}

	if strings.HasPrefix(command, "browse") {
		initLogging(io.Discard, level)
	} else {
		initLogging(os.Stderr, level)
	}
	return func() {}, nil
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func initLogging(w io.Writer, level slog.Level) {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

// newPicker wires a Google Books client from the global config.
func newPicker() (*book.Picker, error) {
	strategy, err := googlebooks.ParseOffsetStrategy(config.OffsetStrategy)
	if err != nil {
		return nil, err
	}

	httpClient, err := googlebooks.NewHTTPClient(config.Timeout, config.Proxy)
	if err != nil {
		return nil, err
	}

	client := googlebooks.NewClient(config.APIKey,
		googlebooks.WithBaseURL(config.APIBaseURL),
		googlebooks.WithHTTPClient(httpClient),
		googlebooks.WithRateLimiter(ratelimit.New("GoogleBooks", config.RatePerSecond)),
		googlebooks.WithOffsetStrategy(strategy),
	)
	return book.NewPicker(client, googlebooks.DefaultRand), nil
}

// openHistory returns nil when history recording is disabled.
func openHistory() (*history.Store, error) {
	if !config.HistoryEnabled {
		return nil, nil
	}
	return history.Open(config.HistoryDBFile)
}

// Run methods for each command

func (b *BrowseCmd) Run(ctx context.Context) error {
	picker, err := newPicker()
	if err != nil {
		return err
	}

	opts := tui.Options{Subject: b.Subject, Fetch: picker.Pick}

	store, err := openHistory()
	if err != nil {
		slog.Warn("History disabled", "error", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts.Recorder = store
	}

	return runBrowse(ctx, opts)
}

func (p *PickCmd) Run(ctx context.Context) error {
	format, err := export.ParseFormat(p.Format)
	if err != nil {
		return err
	}

	picker, err := newPicker()
	if err != nil {
		return err
	}

	record, err := picker.Pick(ctx, p.Subject)
	if err != nil {
		return fmt.Errorf("the request for %s encountered an error: %w", p.Subject, err)
	}

	if record.Empty() {
		slog.Warn("No books found", "subject", p.Subject, "total_items", record.TotalItems)
	}

	p.recordHistory(ctx, *record)
	p.saveCover(ctx, *record)

	return export.Write(stdout, format, p.Subject, *record)
}

func (p *PickCmd) recordHistory(ctx context.Context, record book.Record) {
	store, err := openHistory()
	if err != nil {
		slog.Warn("Failed to open history", "error", err)
		return
	}
	if store == nil {
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(ctx, p.Subject, record); err != nil {
		slog.Warn("Failed to record pick", "error", err)
	}
}

func (p *PickCmd) saveCover(ctx context.Context, record book.Record) {
	if p.CoverDir == "" {
		return
	}
	if record.CoverURL() == "" {
		slog.Info("Book has no cover image", "title", record.Title)
		return
	}

	result, err := cover.NewDownloader(coverHTTP).Save(ctx, cover.Options{
		URL:       record.CoverURL(),
		OutputDir: p.CoverDir,
		Filename:  cover.Filename(record.Title),
		MaxWidth:  p.CoverWidth,
	})
	if err != nil {
		slog.Warn("Failed to save cover", "title", record.Title, "error", err)
		return
	}
	slog.Debug("Cover ready", "path", result.Path, "downloaded", result.Downloaded)
}
