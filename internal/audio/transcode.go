// Package audio converts Telegram voice notes into a format the transcription
// API accepts. Telegram delivers voice as OGG/Opus; Whisper wants mp3, so the
// conversion shells out to ffmpeg.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// transcodeTimeout bounds a single ffmpeg run
const transcodeTimeout = 30 * time.Second

// Transcoder converts voice audio via an external ffmpeg binary
type Transcoder struct {
	binary string
	logger zerolog.Logger
}

// NewTranscoder creates a transcoder using the given ffmpeg binary. An empty
// binary means "ffmpeg" resolved from PATH.
func NewTranscoder(binary string, logger zerolog.Logger) *Transcoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Transcoder{
		binary: binary,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Available reports whether the ffmpeg binary can be resolved
func (t *Transcoder) Available() bool {
	_, err := exec.LookPath(t.binary)
	return err == nil
}

// OggToMP3 converts OGG/Opus bytes to mp3 bytes. The audio never touches
// disk; ffmpeg reads stdin and writes stdout.
func (t *Transcoder) OggToMP3(ctx context.Context, ogg []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, transcodeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary,
		"-hide_banner", "-loglevel", "error",
		"-f", "ogg", "-i", "pipe:0",
		"-f", "mp3", "pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(ogg)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	t.logger.Debug().
		Int("in_bytes", len(ogg)).
		Int("out_bytes", out.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Voice transcoded")

	return out.Bytes(), nil
}
