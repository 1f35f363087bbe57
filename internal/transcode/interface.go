package transcode

import "context"

// Converter is the external audio-conversion filter: it turns a container
// the transcription backend rejects into one it accepts. The returned
// cleanup func removes the temporary artifact and must be called on every
// exit path.
type Converter interface {
	ToMP3(ctx context.Context, srcPath string) (path string, cleanup func(), err error)
}
