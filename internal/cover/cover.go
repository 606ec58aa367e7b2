// Package cover downloads book cover thumbnails to disk.
package cover

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const defaultMaxWidth = 600

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options holds options for saving a cover image.
type Options struct {
	// URL is the source URL of the cover image
	URL string
	// OutputDir is the directory where the cover will be saved
	OutputDir string
	// Filename is the name of the cover file (e.g., "Title - cover.jpg")
	Filename string
	// MaxWidth caps the saved image width; wider images are scaled down
	MaxWidth int
	// Overwrite forces re-downloading even if the file exists
	Overwrite bool
}

// Result holds the result of a save operation.
type Result struct {
	// Path is the full path to the saved cover
	Path string
	// Downloaded indicates if a new file was written
	Downloaded bool
}

// Downloader fetches and resizes covers.
type Downloader struct {
	httpClient HTTPDoer
}

// NewDownloader creates a Downloader. A nil client gets a 30s default.
func NewDownloader(client HTTPDoer) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{httpClient: client}
}

// Save downloads opts.URL, scales it down to opts.MaxWidth and writes a JPEG.
// An empty URL is not an error and returns a nil result.
func (d *Downloader) Save(ctx context.Context, opts Options) (*Result, error) {
	if opts.URL == "" {
		return nil, nil
	}
	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}

	path := filepath.Join(opts.OutputDir, opts.Filename)
	result := &Result{Path: path}

	if fileExists(path) && !opts.Overwrite {
		slog.Debug("Cover already exists, skipping download", "path", path)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating cover request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cover directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to write cover: %w", err)
	}

	slog.Info("Saved cover", "path", path)
	result.Downloaded = true
	return result, nil
}

// Filename creates a standard cover filename from a title.
// Returns: "Title - cover.jpg"
func Filename(title string) string {
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	return sanitizeFilename(title) + " - cover.jpg"
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
