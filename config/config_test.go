package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("explicit missing file should fail")
	}

	// No explicit path: defaults plus environment are enough.
	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.Chunker != "sliding_window" {
		t.Errorf("chunker = %q", cfg.Pipeline.Chunker)
	}
	if cfg.Pipeline.Merger != "append" {
		t.Errorf("merger = %q", cfg.Pipeline.Merger)
	}
	if cfg.Pipeline.ThresholdWords != 100 || cfg.Pipeline.MaxIterations != 5 {
		t.Errorf("consolidation defaults = %d/%d", cfg.Pipeline.ThresholdWords, cfg.Pipeline.MaxIterations)
	}
	if cfg.Pipeline.WindowSize != 512 || cfg.Pipeline.MaxTokensPerChunk != 512 {
		t.Errorf("chunking defaults = %d/%d", cfg.Pipeline.WindowSize, cfg.Pipeline.MaxTokensPerChunk)
	}
	if cfg.Pipeline.Taggers["disease"] != "taggerone_disease" {
		t.Errorf("taggers = %v", cfg.Pipeline.Taggers)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr())
	}
	if cfg.Redis.Stream != "document.enqueued" || cfg.Redis.Group != "pubtator-workers" {
		t.Errorf("stream/group = %q/%q", cfg.Redis.Stream, cfg.Redis.Group)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Address != ":9090" {
		t.Errorf("telemetry defaults = %v/%q", cfg.Telemetry.Enabled, cfg.Telemetry.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
  "pipeline": {
    "chunker": "annotation_aware",
    "merger": "inline",
    "threshold_words": 40
  },
  "redis": {"host": "queue.internal", "port": "6380"}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Pipeline.Chunker != "annotation_aware" || cfg.Pipeline.Merger != "inline" {
		t.Errorf("strategies = %q/%q", cfg.Pipeline.Chunker, cfg.Pipeline.Merger)
	}
	if cfg.Pipeline.ThresholdWords != 40 {
		t.Errorf("threshold = %d", cfg.Pipeline.ThresholdWords)
	}
	if cfg.Redis.Addr() != "queue.internal:6380" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr())
	}
	// Untouched keys keep their defaults.
	if cfg.Pipeline.MaxIterations != 5 {
		t.Errorf("max iterations = %d", cfg.Pipeline.MaxIterations)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("want error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero config should validate: %v", err)
	}
	cfg.Pipeline.ThresholdWords = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative threshold should fail")
	}
}
