package webclip

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// browserPath returns the executable a Capturer launches. A configured
// path wins. With auto-download enabled an installed browser is preferred,
// and only if there is none a Chromium build is fetched into the rod cache
// (~/.cache/rod/browser on Unix, %APPDATA%\rod\browser on Windows).
// An empty result lets chromedp search its default locations.
func browserPath(cfg config) (string, error) {
	if cfg.chromePath != "" || !cfg.autoDownload {
		return cfg.chromePath, nil
	}
	if path, found := launcher.LookPath(); found {
		return path, nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("webclip: downloading browser: %w", err)
	}
	return path, nil
}
