package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Supported upload formats per category. Anything else short-circuits to
// an unsupported failure before a single byte leaves the machine.
var (
	imageFormats = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".webp": true, ".heic": true, ".heif": true,
	}
	audioFormats = map[string]bool{
		".mp3": true, ".wav": true, ".m4a": true, ".ogg": true,
		".opus": true, ".aac": true, ".flac": true, ".mp4": true,
		".mpeg": true, ".mpga": true, ".oga": true, ".webm": true,
	}
)

// Failures that never benefit from trying a different backend. An invalid
// format is not here: a secondary backend may well accept content the
// primary rejected.
var noFallback = map[domain.FailureReason]bool{
	domain.ReasonUnsupported: true,
	domain.ReasonTooLarge:    true,
}

func (g *implGateway) DescribeImage(ctx context.Context, asset domain.MediaAsset) domain.Outcome {
	start := time.Now()
	if outcome, bad := g.precheck(asset, imageFormats, g.maxImageBytes, start); bad {
		return outcome
	}
	return g.run(ctx, asset, g.vision, g.visionRetry, start)
}

func (g *implGateway) TranscribeAudio(ctx context.Context, asset domain.MediaAsset) domain.Outcome {
	start := time.Now()
	if outcome, bad := g.precheck(asset, audioFormats, g.maxAudioBytes, start); bad {
		return outcome
	}
	return g.run(ctx, asset, g.audio, g.audioRetry, start)
}

// precheck enforces format and size preconditions before any network call.
func (g *implGateway) precheck(asset domain.MediaAsset, formats map[string]bool, maxBytes int64, start time.Time) (domain.Outcome, bool) {
	if !formats[asset.Extension] {
		return domain.Fail(domain.ReasonUnsupported,
			"unsupported format: "+asset.Extension, time.Since(start)), true
	}
	if asset.SizeBytes > maxBytes {
		return domain.Fail(domain.ReasonTooLarge,
			asset.Name+" exceeds the size limit for its category", time.Since(start)), true
	}
	return domain.Outcome{}, false
}

// run walks the backend chain. Per backend it retries transient failures
// up to the policy bound, then falls through to the next backend unless
// the failure is in the no-fallback set.
func (g *implGateway) run(ctx context.Context, asset domain.MediaAsset, backends []Backend, policy retryPolicy, start time.Time) domain.Outcome {
	if len(backends) == 0 {
		return domain.Fail(domain.ReasonBackendUnavailable,
			"no backend configured for "+string(asset.Category), time.Since(start))
	}

	var last domain.Outcome
	for i, backend := range backends {
		for attempt := 0; attempt <= policy.maxRetries; attempt++ {
			if attempt > 0 {
				g.logger.Info(ctx, "Retry %d/%d on %s for %s",
					attempt, policy.maxRetries, backend.Name(), asset.Name)
				g.sleep(policy.delay)
			}

			text, err := g.call(ctx, backend, asset)
			if err == nil {
				if attempt > 0 {
					g.logger.Info(ctx, "%s succeeded on retry %d", asset.Name, attempt)
				}
				return domain.Succeed(text, backend.Name(), time.Since(start))
			}

			reason := domain.ReasonOf(err)
			last = domain.Fail(reason, err.Error(), time.Since(start))
			last.Backend = backend.Name()

			if !reason.Retryable() {
				// Retrying a deterministic rejection wastes a call.
				g.logger.Debug(ctx, "Not retrying %s on %s: %s", asset.Name, backend.Name(), reason)
				break
			}
		}

		if noFallback[last.Reason] {
			break
		}
		if i < len(backends)-1 {
			g.logger.Warn(ctx, "Backend %s failed for %s (%s), falling back",
				backend.Name(), asset.Name, last.Reason)
		}
	}

	return last
}

// call runs one backend attempt under the per-call timeout.
func (g *implGateway) call(ctx context.Context, backend Backend, asset domain.MediaAsset) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	text, err := backend.Describe(ctx, asset)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		// Backend classifiers rebuild errors and lose the cause chain,
		// so the context itself is the authority on expired deadlines.
		return "", domain.NewFailure(domain.ReasonTimeout,
			"%s timed out after %s", backend.Name(), g.callTimeout)
	}
	return text, err
}
