package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"beseda/internal/chunk"
)

// MaxMessageLen is Telegram's hard per-message character limit
const MaxMessageLen = 4096

// Sender is the outbound surface the dispatcher needs; Bot satisfies it
type Sender interface {
	SendMessage(chatID int64, text, parseMode string) error
	SendVoice(chatID int64, audio []byte) error
}

// SpeechSynthesizer renders text as audio for the voice side channel
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// Dispatcher turns one model response into one or more Telegram sends.
// Responses with fenced code go out in Markdown mode, split so no fence is
// broken across messages; everything else goes out plain with the model label
// prefixed to the first segment. A failed Markdown send falls back to plain
// text for that segment, logged but invisible to the user.
type Dispatcher struct {
	sender Sender
	speech SpeechSynthesizer
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher over a sender and a speech synthesizer
func NewDispatcher(sender Sender, speech SpeechSynthesizer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		speech: speech,
		logger: logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch sends a response, label-prefixed and chunked as needed. When
// voiceReply is set the raw text (without the label) is also synthesized and
// sent as one audio message after the text sends; a voice failure is logged
// and does not fail the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, chatID int64, label, text string, voiceReply bool) error {
	if chunk.HasFence(text) {
		if err := d.sendMarkdown(chatID, label, text); err != nil {
			return err
		}
	} else {
		for _, segment := range chunk.SplitFormatted(label, text, MaxMessageLen) {
			if err := d.sender.SendMessage(chatID, segment, ""); err != nil {
				return fmt.Errorf("failed to send response segment: %w", err)
			}
		}
	}

	if voiceReply {
		d.sendVoiceReply(ctx, chatID, text)
	}

	return nil
}

// sendMarkdown sends a code-bearing response in Markdown mode, never breaking
// a segment boundary inside a fence
func (d *Dispatcher) sendMarkdown(chatID int64, label, text string) error {
	for _, segment := range chunk.SplitCodeSafe(label+text, MaxMessageLen) {
		err := d.sender.SendMessage(chatID, segment, tgbotapi.ModeMarkdown)
		if err == nil {
			continue
		}

		d.logger.Warn().
			Int64("chat_id", chatID).
			Err(err).
			Msg("Markdown send failed, falling back to plain text")

		if err := d.sender.SendMessage(chatID, segment, ""); err != nil {
			return fmt.Errorf("failed to send response segment: %w", err)
		}
	}
	return nil
}

// sendVoiceReply synthesizes and sends the audio side channel
func (d *Dispatcher) sendVoiceReply(ctx context.Context, chatID int64, text string) {
	audio, err := d.speech.SynthesizeSpeech(ctx, text)
	if err != nil {
		d.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Speech synthesis failed")
		return
	}

	if err := d.sender.SendVoice(chatID, audio); err != nil {
		d.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send voice reply")
	}
}
