// Package telegram is the transport layer: the bot API wrapper, the update
// handler that routes commands, callbacks and free-form messages, and the
// response dispatcher that fits model output into Telegram's message limits.
package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"beseda/internal/logger"
	"beseda/internal/menu"
)

// Bot wraps the Telegram bot API with the send/edit primitives the handler
// and dispatcher need
type Bot struct {
	api    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewBot authenticates against the Telegram API
func NewBot(token string, log *logger.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: log.GetZerolog().With().Str("component", "telegram").Logger(),
	}

	bot.logger.Info().
		Str("username", api.Self.UserName).
		Int64("id", api.Self.ID).
		Msg("Telegram bot authenticated")

	return bot, nil
}

// Updates opens the long-polling update channel
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return b.api.GetUpdatesChan(u)
}

// Stop stops receiving updates; the channel returned by Updates closes
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a text message. An empty parseMode sends plain text.
func (b *Bot) SendMessage(chatID int64, text, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendView sends a rendered menu screen as a new HTML message
func (b *Bot) SendView(chatID int64, view menu.View) error {
	msg := tgbotapi.NewMessage(chatID, view.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := keyboardFor(view); kb != nil {
		msg.ReplyMarkup = *kb
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send view: %w", err)
	}
	return nil
}

// EditView replaces a message's text and keyboard with a rendered screen.
// Editing a message to its current content is treated as a no-op, which is
// what happens when a user re-selects the setting already in effect.
func (b *Bot) EditView(chatID int64, messageID int, view menu.View) error {
	var err error
	if kb := keyboardFor(view); kb != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, view.Text, *kb)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err = b.api.Send(edit)
	} else {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, view.Text)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err = b.api.Send(edit)
	}

	if err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// SendTransient sends a short-lived status message and returns its ID so the
// caller can delete it once the real reply is ready
func (b *Bot) SendTransient(chatID int64, text string) (int, error) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, fmt.Errorf("failed to send transient message: %w", err)
	}
	return sent.MessageID, nil
}

// DeleteMessage removes a message; failures are logged, not propagated
func (b *Bot) DeleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Debug().
			Int64("chat_id", chatID).
			Int("message_id", messageID).
			Err(err).
			Msg("Failed to delete message")
	}
}

// SendAction sends a chat action such as "typing" or "upload_photo"
func (b *Bot) SendAction(chatID int64, action string) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		b.logger.Debug().Int64("chat_id", chatID).Err(err).Msg("Failed to send chat action")
	}
}

// AnswerCallback acknowledges a callback query so the client stops its spinner
func (b *Bot) AnswerCallback(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		b.logger.Debug().Err(err).Msg("Failed to answer callback query")
	}
}

// SendVoice sends synthesized speech as an audio message
func (b *Bot) SendVoice(chatID int64, audioData []byte) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate audio name: %w", err)
	}

	msg := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("speech_%s.mp3", id),
		Bytes: audioData,
	})
	msg.Title = "Audio answer option"

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send audio: %w", err)
	}
	return nil
}

// SendPhotoURL sends a photo by remote URL; Telegram fetches it server-side
func (b *Bot) SendPhotoURL(chatID int64, url string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}
