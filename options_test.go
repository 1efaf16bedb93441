package webclip

import (
	"runtime"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.timeout)
	}
	if cfg.quality != DefaultQuality {
		t.Errorf("default quality = %d, want %d", cfg.quality, DefaultQuality)
	}
	if cfg.workers != runtime.NumCPU() {
		t.Errorf("default workers = %d, want %d", cfg.workers, runtime.NumCPU())
	}
	if cfg.strictJPEG {
		t.Error("strict JPEG mode is on by default")
	}
}

func TestOptions(t *testing.T) {
	cfg := newConfig([]Option{
		WithChromePath("/opt/chrome"),
		WithTimeout(time.Minute),
		WithNoSandbox(),
		WithAutoDownload(),
		WithStrictJPEG(),
	})
	if cfg.chromePath != "/opt/chrome" || cfg.timeout != time.Minute {
		t.Errorf("path/timeout not applied: %+v", cfg)
	}
	if !cfg.noSandbox || !cfg.autoDownload || !cfg.strictJPEG {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestWithQuality_Clamped(t *testing.T) {
	for q, want := range map[int]int{-5: 1, 0: 1, 1: 1, 75: 75, 100: 100, 101: 100} {
		if got := newConfig([]Option{WithQuality(q)}).quality; got != want {
			t.Errorf("WithQuality(%d) = %d, want %d", q, got, want)
		}
	}
}

func TestWithWorkers_Minimum(t *testing.T) {
	for n, want := range map[int]int{-1: 1, 0: 1, 3: 3} {
		if got := newConfig([]Option{WithWorkers(n)}).workers; got != want {
			t.Errorf("WithWorkers(%d) = %d, want %d", n, got, want)
		}
	}
}
