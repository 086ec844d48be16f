package config

import (
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	if cfg.WhisperModel != "whisper-1" {
		t.Errorf("WhisperModel default = %q", cfg.WhisperModel)
	}
	if cfg.Language != "en" {
		t.Errorf("Language default = %q", cfg.Language)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
	if cfg.ImageQuality != 95 {
		t.Errorf("ImageQuality default = %d", cfg.ImageQuality)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{Language: "ja", ImageQuality: 80, OutputDir: "out"}
	applyDefaults(&cfg)
	if cfg.Language != "ja" || cfg.ImageQuality != 80 || cfg.OutputDir != "out" {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestApplyDefaultsClampsQuality(t *testing.T) {
	for _, q := range []int{-1, 0, 101} {
		cfg := Config{ImageQuality: q}
		applyDefaults(&cfg)
		if cfg.ImageQuality != 95 {
			t.Errorf("ImageQuality %d normalized to %d, want 95", q, cfg.ImageQuality)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{OutputDir: "output", ImageQuality: 95}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg = Config{OutputDir: "  ", ImageQuality: 95}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "output_dir") {
		t.Errorf("blank output_dir not flagged: %v", err)
	}

	cfg = Config{OutputDir: "output", ImageQuality: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range image_quality not flagged")
	}
}

func TestHasValidAPI(t *testing.T) {
	cfg := Config{APIKey: "sk-test", BaseURL: "https://api.openai.com/v1"}
	if !cfg.HasValidAPI() {
		t.Error("config with key and base URL reported invalid")
	}
	cfg.APIKey = "   "
	if cfg.HasValidAPI() {
		t.Error("blank API key reported valid")
	}
}
