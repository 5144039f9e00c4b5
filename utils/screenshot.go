package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// CaptureFailure saves a timestamped full-page screenshot under
// logs/screenshots and returns its path. Used when a structural failure
// aborts the crawl, so the operator can diff the layout against the
// selectors.
func CaptureFailure(page playwright.Page, name string) (string, error) {
	dir := filepath.Join("logs", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, timestamp))

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}

	return path, nil
}
