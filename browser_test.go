package webclip

import "testing"

func TestBrowserPath_Explicit(t *testing.T) {
	cfg := newConfig([]Option{WithChromePath("/opt/chrome/chrome"), WithAutoDownload()})
	got, err := browserPath(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "/opt/chrome/chrome" {
		t.Errorf("browserPath = %q, want the configured path", got)
	}
}

func TestBrowserPath_NoDownload(t *testing.T) {
	got, err := browserPath(defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("browserPath = %q, want empty so chromedp searches PATH", got)
	}
}
