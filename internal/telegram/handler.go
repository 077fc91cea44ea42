package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"beseda/internal/access"
	"beseda/internal/audio"
	"beseda/internal/chunk"
	"beseda/internal/inference"
	"beseda/internal/logger"
	"beseda/internal/menu"
	"beseda/internal/queue"
	"beseda/internal/ratelimit"
	"beseda/internal/session"
)

// Handler routes updates: access gate, rate limit, then per-user lane. Every
// piece of work for one user runs serialized on that user's lane, inference
// call included, so two messages from the same user never interleave.
type Handler struct {
	bot        *Bot
	gate       *access.Gate
	store      *session.Store
	machine    *menu.Machine
	lanes      *queue.Lanes
	limiter    *ratelimit.Limiter
	llm        inference.Client
	transcoder *audio.Transcoder
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// NewHandler wires the handler over its collaborators
func NewHandler(
	bot *Bot,
	gate *access.Gate,
	store *session.Store,
	machine *menu.Machine,
	lanes *queue.Lanes,
	limiter *ratelimit.Limiter,
	llm inference.Client,
	transcoder *audio.Transcoder,
	log *logger.Logger,
) *Handler {
	zl := log.GetZerolog()
	return &Handler{
		bot:        bot,
		gate:       gate,
		store:      store,
		machine:    machine,
		lanes:      lanes,
		limiter:    limiter,
		llm:        llm,
		transcoder: transcoder,
		dispatcher: NewDispatcher(bot, llm, zl),
		logger:     zl.With().Str("component", "handler").Logger(),
	}
}

// Run consumes updates until the context is cancelled or the channel closes
func (h *Handler) Run(ctx context.Context) {
	updates := h.bot.Updates()

	h.logger.Info().Msg("Update loop started")

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.route(update)
		}
	}
}

// route performs the gate and rate-limit checks inline, then hands the real
// work to the user's lane
func (h *Handler) route(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil {
			return
		}
		userID := cq.From.ID
		chatID := cq.Message.Chat.ID

		if !h.gate.Admit(userID) {
			h.deny(chatID, userID)
			return
		}

		h.lanes.Submit(userID, func(ctx context.Context) error {
			return h.handleCallback(ctx, cq)
		})

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		userID := msg.From.ID
		chatID := msg.Chat.ID

		if !h.gate.Admit(userID) {
			h.deny(chatID, userID)
			return
		}

		if !h.limiter.Allow(userID) {
			return
		}

		h.lanes.Submit(userID, func(ctx context.Context) error {
			return h.handleMessage(ctx, msg)
		})
	}
}

// deny tells a rejected user their numeric ID so an operator can add them
func (h *Handler) deny(chatID, userID int64) {
	h.logger.Info().Int64("user_id", userID).Msg("Access denied")

	if err := h.bot.SendMessage(chatID, fmt.Sprintf(deniedTextFmt, userID), tgbotapi.ModeHTML); err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to send denial")
	}
}

// handleMessage dispatches commands, voice, photos and plain text
func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	s, err := h.store.Get(userID)
	if err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to load session")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	switch {
	case msg.IsCommand():
		return h.handleCommand(ctx, msg, s)
	case msg.Voice != nil:
		return h.handleVoice(ctx, msg, s)
	case len(msg.Photo) > 0:
		return h.handlePhoto(ctx, msg, s)
	case msg.Text != "":
		return h.handleText(ctx, chatID, userID, s, msg.Text)
	}

	return nil
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message, s *session.Session) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		s.Reset()
		h.machine.Reset(userID)
		if err := h.store.Save(userID); err != nil {
			h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to save reset session")
		}
		return h.bot.SendMessage(chatID, startText, "")

	case "menu":
		h.machine.Reset(userID)
		return h.bot.SendView(chatID, menu.Render(menu.ScreenRoot, userID, s))

	case "help":
		h.machine.Reset(userID)
		return h.bot.SendMessage(chatID, helpText, tgbotapi.ModeHTML)

	case "enable_all":
		return h.setAllUsers(chatID, userID, true)

	case "disable_all":
		return h.setAllUsers(chatID, userID, false)

	default:
		// Unrecognized commands flow into the conversation like any text.
		return h.handleText(ctx, chatID, userID, s, msg.Text)
	}
}

func (h *Handler) setAllUsers(chatID, callerID int64, enabled bool) error {
	if err := h.gate.SetAllUsers(callerID, enabled); err != nil {
		if errors.Is(err, access.ErrNotPrivileged) {
			return h.bot.SendMessage(chatID, noPermissionText, "")
		}
		return err
	}

	text := allEnabledText
	if !enabled {
		text = allDisabledText
	}
	return h.bot.SendMessage(chatID, text, "")
}

// handleCallback applies a menu action and re-renders the triggering message
// in place
func (h *Handler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	defer h.bot.AnswerCallback(cq.ID)

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	s, err := h.store.Get(userID)
	if err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to load session")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	action := menu.Action(cq.Data)

	if action == menu.ActionShowContext {
		return h.showContext(cq, s)
	}

	target, ok := menu.Target(action)
	if !ok {
		h.logger.Warn().Str("data", cq.Data).Msg("Unknown callback action")
		return nil
	}

	if menu.IsSetting(action) {
		if menu.ApplySetting(s, action) {
			if err := h.store.Save(userID); err != nil {
				h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to save setting")
			}
		}
	}

	h.machine.Enter(userID, target)

	return h.bot.EditView(chatID, cq.Message.MessageID, menu.Render(target, userID, s))
}

// showContext dumps the full history as chunked plain messages, then offers a
// fresh context keyboard, since the dump has scrolled the menu away
func (h *Handler) showContext(cq *tgbotapi.CallbackQuery, s *session.Session) error {
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	h.machine.Enter(userID, menu.ScreenContextActions)

	contextView := menu.Render(menu.ScreenContextActions, userID, s)

	if len(s.History) == 0 {
		if cq.Message.Text == contextEmptyText {
			return nil
		}
		contextView.Text = contextEmptyText
		return h.bot.EditView(chatID, cq.Message.MessageID, contextView)
	}

	header := menu.View{Text: contextHeaderText}
	if err := h.bot.EditView(chatID, cq.Message.MessageID, header); err != nil {
		h.logger.Debug().Int64("user_id", userID).Err(err).Msg("Failed to edit context header")
	}

	for _, segment := range chunk.Split(contextDump(s.History), MaxMessageLen) {
		if err := h.bot.SendMessage(chatID, segment, ""); err != nil {
			return fmt.Errorf("failed to send context segment: %w", err)
		}
	}

	contextView.Text = contextActionsText
	return h.bot.SendView(chatID, contextView)
}

// contextDump renders history entries as "role:\ncontent" blocks separated by
// blank lines
func contextDump(history []session.Message) string {
	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, m.Role+":\n"+m.Content)
	}
	return strings.Join(parts, "\n\n")
}

// handleText routes free-form text: role input when the menu is waiting for
// one, the conversation pipeline otherwise
func (h *Handler) handleText(ctx context.Context, chatID, userID int64, s *session.Session, text string) error {
	if h.machine.AwaitingRoleInput(userID) {
		return h.assignRole(chatID, userID, s, text)
	}

	return h.converse(ctx, chatID, userID, s, text)
}

// assignRole consumes the pending message as the system role value
func (h *Handler) assignRole(chatID, userID int64, s *session.Session, value string) error {
	s.SystemRole = value
	if err := h.store.Save(userID); err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to save system role")
	}

	h.machine.Enter(userID, menu.ScreenRoleActions)

	return h.bot.SendView(chatID, menu.Render(menu.ScreenRoleActions, userID, s))
}

// handleVoice downloads, transcodes and transcribes a voice note, then treats
// the transcription exactly like typed text
func (h *Handler) handleVoice(ctx context.Context, msg *tgbotapi.Message, s *session.Session) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	text, err := h.transcribeVoice(ctx, userID, msg.Voice.FileID)
	if err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Voice processing failed")
		return h.bot.SendMessage(chatID, voiceFailureText, "")
	}

	return h.handleText(ctx, chatID, userID, s, text)
}

func (h *Handler) transcribeVoice(ctx context.Context, userID int64, fileID string) (string, error) {
	ogg, err := h.bot.DownloadFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("download voice: %w", err)
	}

	mp3, err := h.transcoder.OggToMP3(ctx, ogg)
	if err != nil {
		return "", fmt.Errorf("transcode voice: %w", err)
	}

	name := fmt.Sprintf("voice_%d.mp3", userID)
	text, err := h.llm.TranscribeAudio(ctx, bytes.NewReader(mp3), name)
	if err != nil {
		return "", fmt.Errorf("transcribe voice: %w", err)
	}

	return text, nil
}

// handlePhoto answers a question about a photo via the vision path. The
// exchange counts toward MessageCount but never enters History.
func (h *Handler) handlePhoto(ctx context.Context, msg *tgbotapi.Message, s *session.Session) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	question := msg.Caption
	if question == "" {
		question = defaultPhotoQuestion
	}

	transientID, err := h.bot.SendTransient(chatID, processingText)
	if err != nil {
		h.logger.Debug().Int64("user_id", userID).Err(err).Msg("Failed to send transient message")
	}

	answer, err := h.describePhoto(ctx, largestPhoto(msg.Photo), question)

	if transientID != 0 {
		h.bot.DeleteMessage(chatID, transientID)
	}

	if err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Vision exchange failed")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	s.MessageCount++
	if sendErr := h.bot.SendMessage(chatID, answer, ""); sendErr != nil {
		return sendErr
	}

	if err := h.store.Save(userID); err != nil {
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Session not persisted after vision reply")
	}

	return nil
}

func (h *Handler) describePhoto(ctx context.Context, fileID, question string) (string, error) {
	if fileID == "" {
		return "", fmt.Errorf("no photo sizes in message")
	}

	data, err := h.bot.DownloadFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}

	return h.llm.DescribeImage(ctx, question, photoDataURL(data))
}

// converse runs one conversation exchange: chat completion for text models,
// image generation for DALL·E. The reply is sent before the session write; a
// failed write after a sent reply is logged as an inconsistency, never rolled
// back.
func (h *Handler) converse(ctx context.Context, chatID, userID int64, s *session.Session, prompt string) error {
	exchangeID := uuid.NewString()
	log := h.logger.With().
		Str("exchange_id", exchangeID).
		Int64("user_id", userID).
		Str("model", string(s.Model)).
		Logger()

	if s.Model.IsImage() {
		return h.generateImage(ctx, log, chatID, userID, s, prompt)
	}

	transientID, err := h.bot.SendTransient(chatID, processingText)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to send transient message")
	}
	h.bot.SendAction(chatID, tgbotapi.ChatTyping)

	s.Append(session.RoleUser, prompt)

	system := ""
	if s.SystemRole != "" && s.Model.AcceptsSystemRole() {
		system = s.SystemRole
	}

	reply, err := h.llm.CompleteChat(ctx, s.Model, system, s.Extract(s.MaxContextChars))

	if transientID != 0 {
		h.bot.DeleteMessage(chatID, transientID)
	}

	if err != nil {
		// A failed exchange leaves the session as it was.
		s.History = s.History[:len(s.History)-1]
		log.Error().Err(err).Msg("Exchange failed")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	s.Append(session.RoleAssistant, reply)
	s.MessageCount++

	if err := h.dispatcher.Dispatch(ctx, chatID, s.ModelChatPrefix, reply, s.VoiceReply); err != nil {
		log.Error().Err(err).Msg("Failed to dispatch reply")
	}

	if err := h.store.Save(userID); err != nil {
		log.Error().Err(err).Msg("Session not persisted after sent reply")
	}

	log.Info().Int("message_count", s.MessageCount).Msg("Exchange completed")
	return nil
}

// generateImage runs one DALL·E exchange
func (h *Handler) generateImage(ctx context.Context, log zerolog.Logger, chatID, userID int64, s *session.Session, prompt string) error {
	h.bot.SendAction(chatID, tgbotapi.ChatUploadPhoto)

	url, err := h.llm.GenerateImage(ctx, prompt, s.ImageSize, s.ImageQuality)
	if err != nil {
		log.Error().Err(err).Msg("Image generation failed")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	if err := h.bot.SendPhotoURL(chatID, url); err != nil {
		log.Error().Err(err).Msg("Failed to send generated image")
		return h.bot.SendMessage(chatID, failureText, "")
	}

	s.MessageCount++
	if err := h.store.Save(userID); err != nil {
		log.Error().Err(err).Msg("Session not persisted after image reply")
	}

	log.Info().Int("message_count", s.MessageCount).Msg("Image exchange completed")
	return nil
}
