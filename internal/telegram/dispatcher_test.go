package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID    int64
	text      string
	parseMode string
}

type fakeSender struct {
	messages     []sentMessage
	voices       [][]byte
	failMarkdown bool
	failAll      bool
}

func (f *fakeSender) SendMessage(chatID int64, text, parseMode string) error {
	if f.failAll {
		return fmt.Errorf("send failed")
	}
	if f.failMarkdown && parseMode == tgbotapi.ModeMarkdown {
		return fmt.Errorf("can't parse entities")
	}
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, parseMode: parseMode})
	return nil
}

func (f *fakeSender) SendVoice(chatID int64, audio []byte) error {
	f.voices = append(f.voices, audio)
	return nil
}

type fakeSpeech struct {
	requests []string
	fail     bool
}

func (f *fakeSpeech) SynthesizeSpeech(_ context.Context, text string) ([]byte, error) {
	if f.fail {
		return nil, fmt.Errorf("synthesis failed")
	}
	f.requests = append(f.requests, text)
	return []byte("mp3"), nil
}

func newTestDispatcher() (*Dispatcher, *fakeSender, *fakeSpeech) {
	sender := &fakeSender{}
	speech := &fakeSpeech{}
	return NewDispatcher(sender, speech, zerolog.Nop()), sender, speech
}

func TestDispatch_ShortPlainResponseIsOneLabeledSend(t *testing.T) {
	d, sender, _ := newTestDispatcher()

	err := d.Dispatch(context.Background(), 1, "4o mini:\n\n", "hello there", false)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "4o mini:\n\nhello there", sender.messages[0].text)
	assert.Equal(t, "", sender.messages[0].parseMode)
}

func TestDispatch_LongPlainResponseIsExactlyThreeSends(t *testing.T) {
	d, sender, _ := newTestDispatcher()

	// 90 lines of 99 chars plus newlines: 9000 characters, no fences.
	text := strings.Repeat(strings.Repeat("a", 99)+"\n", 90)
	require.Len(t, text, 9000)

	err := d.Dispatch(context.Background(), 1, "4o:\n\n", text, false)
	require.NoError(t, err)

	require.Len(t, sender.messages, 3)
	for _, msg := range sender.messages {
		assert.LessOrEqual(t, len(msg.text), MaxMessageLen)
	}
	assert.True(t, strings.HasPrefix(sender.messages[0].text, "4o:\n\n"))
}

func TestDispatch_FencedResponseGoesOutAsMarkdown(t *testing.T) {
	d, sender, _ := newTestDispatcher()

	text := "here you go\n```go\nfmt.Println(\"hi\")\n```"
	err := d.Dispatch(context.Background(), 1, "4o:\n\n", text, false)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, tgbotapi.ModeMarkdown, sender.messages[0].parseMode)
	assert.Contains(t, sender.messages[0].text, "```go")
}

func TestDispatch_FencesStayBalancedPerSegment(t *testing.T) {
	d, sender, _ := newTestDispatcher()

	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteString("intro text\n```\n")
		b.WriteString(strings.Repeat(strings.Repeat("x", 80)+"\n", 30))
		b.WriteString("```\n")
	}

	err := d.Dispatch(context.Background(), 1, "", b.String(), false)
	require.NoError(t, err)

	require.Greater(t, len(sender.messages), 1)
	for _, msg := range sender.messages {
		assert.Equal(t, 0, strings.Count(msg.text, "```")%2,
			"segment must contain balanced fences")
	}
}

func TestDispatch_MarkdownFailureFallsBackToPlain(t *testing.T) {
	d, sender, _ := newTestDispatcher()
	sender.failMarkdown = true

	text := "```\ncode\n```"
	err := d.Dispatch(context.Background(), 1, "", text, false)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "", sender.messages[0].parseMode)
	assert.Equal(t, text, sender.messages[0].text)
}

func TestDispatch_SendFailurePropagates(t *testing.T) {
	d, sender, _ := newTestDispatcher()
	sender.failAll = true

	err := d.Dispatch(context.Background(), 1, "", "hello", false)
	assert.Error(t, err)
}

func TestDispatch_VoiceReplySynthesizesRawText(t *testing.T) {
	d, sender, speech := newTestDispatcher()

	err := d.Dispatch(context.Background(), 1, "4o:\n\n", "spoken answer", true)
	require.NoError(t, err)

	require.Len(t, speech.requests, 1)
	assert.Equal(t, "spoken answer", speech.requests[0], "label must not be spoken")
	assert.Len(t, sender.voices, 1)
}

func TestDispatch_VoiceFailureDoesNotFailDispatch(t *testing.T) {
	d, sender, speech := newTestDispatcher()
	speech.fail = true

	err := d.Dispatch(context.Background(), 1, "", "answer", true)
	require.NoError(t, err)

	assert.Len(t, sender.messages, 1)
	assert.Empty(t, sender.voices)
}

func TestDispatch_NoVoiceWhenDisabled(t *testing.T) {
	d, sender, speech := newTestDispatcher()

	err := d.Dispatch(context.Background(), 1, "", "answer", false)
	require.NoError(t, err)

	assert.Empty(t, speech.requests)
	assert.Empty(t, sender.voices)
}
