package handler

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/Talha76/memorize-words/internal/service"
	"github.com/Talha76/memorize-words/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseDeleteIndex extracts the added-pair index from a delete button
func parseDeleteIndex(data string) (int, bool) {
	if !strings.HasPrefix(data, deletePrefix) {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(data, deletePrefix))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks not routed by their Unique
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose Unique didn't come through
	unique := callback.Unique
	if unique == "" {
		unique, _, _ = strings.Cut(data, "|")
	}
	if fn, ok := h.buttonHandlers()[unique]; ok {
		return fn(c)
	}

	// Handle by Data prefix (dynamic buttons)
	if i, ok := parseDeleteIndex(unique); ok {
		return h.handleDelete(c, i)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

func (h *Handler) handleReveal(c tele.Context) error {
	return h.apply(c, "reveal", h.workspaces.Reveal)
}

func (h *Handler) handleCorrect(c tele.Context) error {
	return h.apply(c, "correct", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.Answer(ctx, owner, true)
	})
}

func (h *Handler) handleWrong(c tele.Context) error {
	return h.apply(c, "wrong", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.Answer(ctx, owner, false)
	})
}

func (h *Handler) handlePrev(c tele.Context) error {
	return h.apply(c, "prev", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.Navigate(ctx, owner, study.DirectionPrev)
	})
}

func (h *Handler) handleNext(c tele.Context) error {
	return h.apply(c, "next", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.Navigate(ctx, owner, study.DirectionNext)
	})
}

func (h *Handler) handleFinish(c tele.Context) error {
	return h.apply(c, "finish", h.workspaces.Finish)
}

func (h *Handler) handlePracticeRemaining(c tele.Context) error {
	return h.apply(c, "practice_remaining", h.workspaces.PracticeRemaining)
}

func (h *Handler) handleAddWords(c tele.Context) error {
	return h.apply(c, "add_words", h.workspaces.AddWords)
}

// handleDelete removes the i-th pair of the added list
func (h *Handler) handleDelete(c tele.Context, i int) error {
	return h.apply(c, "delete", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.DeleteAdded(ctx, owner, i)
	})
}
