package handler

import (
	"context"
	"io"
	"strings"

	"github.com/Talha76/memorize-words/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText treats text as a manual "word = translation" entry in add-words mode
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	return h.apply(c, "add_pair", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.AddPair(ctx, owner, text)
	})
}

// handleDocument loads an uploaded word file
func (h *Handler) handleDocument(c tele.Context) error {
	doc := c.Message().Document

	var upload *service.Upload
	if doc != nil {
		file := &remoteFile{open: func() (io.ReadCloser, error) {
			return c.Bot().File(&doc.File)
		}}
		defer file.Close()

		upload = &service.Upload{
			Name:     doc.FileName,
			MIMEType: doc.MIME,
			Body:     file,
		}

		h.logger.Info("Received word file",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("file_name", doc.FileName),
			zap.String("mime", doc.MIME),
			zap.Any("size", doc.FileSize),
		)
	}

	return h.apply(c, "upload", func(ctx context.Context, owner string) (service.View, error) {
		return h.workspaces.Upload(ctx, owner, upload)
	})
}

// remoteFile downloads a Telegram file on first read, so rejected uploads are never fetched
type remoteFile struct {
	open func() (io.ReadCloser, error)
	rc   io.ReadCloser
	err  error
}

func (f *remoteFile) Read(p []byte) (int, error) {
	if f.rc == nil && f.err == nil {
		f.rc, f.err = f.open()
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.rc.Read(p)
}

func (f *remoteFile) Close() error {
	if f.rc == nil {
		return nil
	}
	return f.rc.Close()
}
