package handler

import (
	"context"
	"strings"

	"github.com/Talha76/memorize-words/internal/wordfile"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	return h.apply(c, "start", h.workspaces.View)
}

// handleNewSession re-sorts all words by their updated scores
func (h *Handler) handleNewSession(c tele.Context) error {
	return h.apply(c, "new_session", h.workspaces.StartNewSession)
}

// handleUploadNew drops the current words and asks for a new file
func (h *Handler) handleUploadNew(c tele.Context) error {
	return h.apply(c, "upload_new", h.workspaces.Reset)
}

// handleExport sends the words with updated stats as a file
func (h *Handler) handleExport(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	text, ok, err := h.workspaces.Export(ctx, ownerID(c))
	if err != nil {
		h.logger.Error("Failed to export words",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: errorText})
		}
		return c.Send(errorText)
	}

	if !ok {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Nothing to export yet", ShowAlert: true})
		}
		return c.Send("Nothing to export yet. Send me a word file first.")
	}

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	doc := &tele.Document{
		File:     tele.FromReader(strings.NewReader(text)),
		FileName: wordfile.FileName,
		MIME:     wordfile.MIMEType,
	}
	return c.Send(doc)
}
