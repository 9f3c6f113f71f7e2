package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/Talha76/memorize-words/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 15 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	workspaces *service.WorkspaceService
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	workspaces *service.WorkspaceService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		workspaces: workspaces,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/export", h.handleExport)
	h.bot.Handle("/new", h.handleNewSession)
	h.bot.Handle("/upload", h.handleUploadNew)

	// Messages
	h.bot.Handle(tele.OnDocument, h.handleDocument)
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	for unique, fn := range h.buttonHandlers() {
		h.bot.Handle("\f"+unique, fn)
	}

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

func (h *Handler) buttonHandlers() map[string]tele.HandlerFunc {
	return map[string]tele.HandlerFunc{
		btnReveal.Unique:            h.handleReveal,
		btnCorrect.Unique:           h.handleCorrect,
		btnWrong.Unique:             h.handleWrong,
		btnPrev.Unique:              h.handlePrev,
		btnNext.Unique:              h.handleNext,
		btnFinish.Unique:            h.handleFinish,
		btnPracticeRemaining.Unique: h.handlePracticeRemaining,
		btnAddWords.Unique:          h.handleAddWords,
		btnDownload.Unique:          h.handleExport,
		btnNewSession.Unique:        h.handleNewSession,
		btnUploadNew.Unique:         h.handleUploadNew,
	}
}

// ownerID keys a Telegram user's workspace
func ownerID(c tele.Context) string {
	return "tg:" + strconv.FormatInt(c.Sender().ID, 10)
}

// apply runs a workspace action for the sender and shows the resulting screen
func (h *Handler) apply(c tele.Context, action string, fn func(ctx context.Context, owner string) (service.View, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	view, err := fn(ctx, ownerID(c))
	if err != nil {
		h.logger.Error("Failed to apply action",
			zap.String("action", action),
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: errorText})
		}
		return c.Send(errorText)
	}

	return h.show(c, view)
}

// show edits the screen message on callbacks and sends a new one otherwise
func (h *Handler) show(c tele.Context, view service.View) error {
	text, markup := renderScreen(view)

	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, opts...)
		}
		return c.Respond()
	}
	return c.Send(text, opts...)
}

// Inline keyboard buttons
var (
	btnReveal = tele.Btn{
		Unique: "reveal",
		Text:   "👁 Reveal",
	}
	btnCorrect = tele.Btn{
		Unique: "correct",
		Text:   "✅ Correct",
	}
	btnWrong = tele.Btn{
		Unique: "wrong",
		Text:   "❌ Wrong",
	}
	btnPrev = tele.Btn{
		Unique: "prev",
		Text:   "◀️ Previous",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "Next ▶️",
	}
	btnFinish = tele.Btn{
		Unique: "finish",
		Text:   "➕ Add more words",
	}
	btnPracticeRemaining = tele.Btn{
		Unique: "practice_remaining",
		Text:   "🔁 Practice remaining words",
	}
	btnAddWords = tele.Btn{
		Unique: "add_words",
		Text:   "➕ Add new words",
	}
	btnDownload = tele.Btn{
		Unique: "download",
		Text:   "💾 Download updated file",
	}
	btnNewSession = tele.Btn{
		Unique: "new_session",
		Text:   "🆕 Start new session",
	}
	btnUploadNew = tele.Btn{
		Unique: "upload_new",
		Text:   "📂 Upload new file",
	}
)
