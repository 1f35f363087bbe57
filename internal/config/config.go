package config

import "fmt"

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Parser      ParserConfig      `yaml:"parser"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	// Inbox is only used by watch mode: new .zip exports dropped here are
	// processed automatically.
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type ParserConfig struct {
	// Continuation controls what happens to lines that do not match the
	// message pattern: "append" glues them to the previous message,
	// "keep" emits them as standalone text messages.
	Continuation string `yaml:"continuation"`
}

type GatewayConfig struct {
	MaxImageSizeMB      int `yaml:"max_image_size_mb"`
	MaxAudioSizeMB      int `yaml:"max_audio_size_mb"`
	VisionMaxRetries    int `yaml:"vision_max_retries"`
	VisionRetryDelaySec int `yaml:"vision_retry_delay_sec"`
	AudioMaxRetries     int `yaml:"audio_max_retries"`
	AudioRetryDelaySec  int `yaml:"audio_retry_delay_sec"`
	CallTimeoutSec      int `yaml:"call_timeout_sec"`
	GeminiRPM           int `yaml:"gemini_rpm"`
}

type OpenAIConfig struct {
	APIKey       string `yaml:"api_key"`
	VisionModel  string `yaml:"vision_model"`
	WhisperModel string `yaml:"whisper_model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type FFmpegConfig struct {
	BinaryPath        string `yaml:"binary_path"`
	ConvertTimeoutSec int    `yaml:"convert_timeout_sec"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	ContinuationAppend = "append"
	ContinuationKeep   = "keep"
)

func (c *Config) Validate() error {
	if c.Parser.Continuation == "" {
		c.Parser.Continuation = ContinuationAppend
	}
	if c.Parser.Continuation != ContinuationAppend && c.Parser.Continuation != ContinuationKeep {
		return fmt.Errorf("parser.continuation must be %q or %q, got %q",
			ContinuationAppend, ContinuationKeep, c.Parser.Continuation)
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "inbox"
	}

	// Size ceilings follow the backend limits: 20 MB for vision uploads,
	// 25 MB for audio transcription.
	if c.Gateway.MaxImageSizeMB == 0 {
		c.Gateway.MaxImageSizeMB = 20
	}
	if c.Gateway.MaxAudioSizeMB == 0 {
		c.Gateway.MaxAudioSizeMB = 25
	}
	if c.Gateway.VisionMaxRetries == 0 {
		c.Gateway.VisionMaxRetries = 2
	}
	if c.Gateway.VisionRetryDelaySec == 0 {
		c.Gateway.VisionRetryDelaySec = 2
	}
	if c.Gateway.AudioMaxRetries == 0 {
		c.Gateway.AudioMaxRetries = 3
	}
	if c.Gateway.AudioRetryDelaySec == 0 {
		c.Gateway.AudioRetryDelaySec = 5
	}
	if c.Gateway.CallTimeoutSec == 0 {
		c.Gateway.CallTimeoutSec = 30
	}
	if c.Gateway.GeminiRPM == 0 {
		c.Gateway.GeminiRPM = 15
	}

	if c.OpenAI.VisionModel == "" {
		c.OpenAI.VisionModel = "gpt-4o"
	}
	if c.OpenAI.WhisperModel == "" {
		c.OpenAI.WhisperModel = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ConvertTimeoutSec == 0 {
		c.FFmpeg.ConvertTimeoutSec = 60
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	return nil
}
