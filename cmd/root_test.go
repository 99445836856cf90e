package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spigell/ghosthire/internal/ghosthire"
	"github.com/spigell/ghosthire/internal/session"

	"github.com/spf13/viper"
)

func TestGetConfig(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("api-url", ghosthire.DefaultAPIURL)
	})

	viper.Set("api-url", "http://scoring.internal:8080")
	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.APIURL != "http://scoring.internal:8080" {
		t.Fatalf("unexpected api url: %q", config.APIURL)
	}
	if config.PollInterval != 10*time.Second {
		t.Fatalf("expected default poll interval, got %s", config.PollInterval)
	}

	viper.Set("api-url", "not a url")
	if _, err := getConfig(); err == nil {
		t.Fatalf("expected validation error for bad api url")
	}
}

func TestResolveInputFromFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(path, []byte("  Senior Go engineer, remote  \n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		flag   string
		value  string
		mode   session.Mode
		expect string
	}{
		{flag: "url", value: "https://jobs.example.com/3", mode: session.ModeURL, expect: "https://jobs.example.com/3"},
		{flag: "text", value: "Junior analyst", mode: session.ModeText, expect: "Junior analyst"},
		{flag: "file", value: path, mode: session.ModeText, expect: "Senior Go engineer, remote"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if err := analyzeCmd.Flags().Set(tt.flag, tt.value); err != nil {
				t.Fatalf("set flag: %v", err)
			}
			t.Cleanup(func() { _ = analyzeCmd.Flags().Set(tt.flag, "") })

			mode, value, err := resolveInput(analyzeCmd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.mode || value != tt.expect {
				t.Fatalf("expected %s/%q, got %s/%q", tt.mode, tt.expect, mode, value)
			}
		})
	}
}

func TestAnalyzeOutputFlags(t *testing.T) {
	raw := analyzeCmd.Flags().Lookup("raw")
	if raw == nil || raw.Value.Type() != "bool" {
		t.Fatalf("expected a bool --raw flag on analyze")
	}

	if analyzeCmd.LocalNonPersistentFlags().Lookup("json") != nil {
		t.Fatalf("--json must stay the persistent log format flag")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Fatalf("expected a persistent --json flag")
	}
}
