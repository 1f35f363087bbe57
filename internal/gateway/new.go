package gateway

import (
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

type retryPolicy struct {
	maxRetries int
	delay      time.Duration
}

type implGateway struct {
	vision []Backend
	audio  []Backend

	maxImageBytes int64
	maxAudioBytes int64
	visionRetry   retryPolicy
	audioRetry    retryPolicy
	callTimeout   time.Duration

	logger logger.Logger
	sleep  func(time.Duration) // test seam
}

// New creates a Gateway over the given backend chains. The first backend
// of each chain is the primary; later ones are fallbacks.
func New(cfg *config.Config, vision, audio []Backend, log logger.Logger) Gateway {
	return &implGateway{
		vision:        vision,
		audio:         audio,
		maxImageBytes: int64(cfg.Gateway.MaxImageSizeMB) * 1024 * 1024,
		maxAudioBytes: int64(cfg.Gateway.MaxAudioSizeMB) * 1024 * 1024,
		visionRetry: retryPolicy{
			maxRetries: cfg.Gateway.VisionMaxRetries,
			delay:      time.Duration(cfg.Gateway.VisionRetryDelaySec) * time.Second,
		},
		audioRetry: retryPolicy{
			maxRetries: cfg.Gateway.AudioMaxRetries,
			delay:      time.Duration(cfg.Gateway.AudioRetryDelaySec) * time.Second,
		},
		callTimeout: time.Duration(cfg.Gateway.CallTimeoutSec) * time.Second,
		logger:      log,
		sleep:       time.Sleep,
	}
}
