package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "valid continuation keep",
			config: Config{
				Parser: ParserConfig{Continuation: "keep"},
			},
			wantErr: false,
		},
		{
			name: "invalid continuation",
			config: Config{
				Parser: ParserConfig{Continuation: "drop"},
			},
			wantErr: true,
		},
		{
			name: "negative max concurrent",
			config: Config{
				Performance: PerformanceConfig{MaxConcurrent: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Parser.Continuation != ContinuationAppend {
		t.Errorf("Continuation = %q, want %q", cfg.Parser.Continuation, ContinuationAppend)
	}
	if cfg.Gateway.MaxImageSizeMB != 20 {
		t.Errorf("MaxImageSizeMB = %d, want 20", cfg.Gateway.MaxImageSizeMB)
	}
	if cfg.Gateway.MaxAudioSizeMB != 25 {
		t.Errorf("MaxAudioSizeMB = %d, want 25", cfg.Gateway.MaxAudioSizeMB)
	}
	if cfg.Gateway.VisionMaxRetries != 2 || cfg.Gateway.AudioMaxRetries != 3 {
		t.Errorf("retries = %d/%d, want 2/3", cfg.Gateway.VisionMaxRetries, cfg.Gateway.AudioMaxRetries)
	}
	if cfg.OpenAI.VisionModel != "gpt-4o" {
		t.Errorf("VisionModel = %q, want gpt-4o", cfg.OpenAI.VisionModel)
	}
	if cfg.OpenAI.WhisperModel != "whisper-1" {
		t.Errorf("WhisperModel = %q, want whisper-1", cfg.OpenAI.WhisperModel)
	}
	if cfg.FFmpeg.BinaryPath != "ffmpeg" {
		t.Errorf("BinaryPath = %q, want ffmpeg", cfg.FFmpeg.BinaryPath)
	}
	if cfg.Performance.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %d, want 1", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
paths:
  output: out
parser:
  continuation: keep
openai:
  api_key: file-key
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Output != "out" {
		t.Errorf("Output = %q, want out", cfg.Paths.Output)
	}
	if cfg.Parser.Continuation != ContinuationKeep {
		t.Errorf("Continuation = %q, want keep", cfg.Parser.Continuation)
	}
	if cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.OpenAI.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("openai:\n  api_key: file-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "env-gemini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.OpenAI.APIKey)
	}
	if cfg.Gemini.APIKey != "env-gemini" {
		t.Errorf("Gemini APIKey = %q, want env-gemini", cfg.Gemini.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
