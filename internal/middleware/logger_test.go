package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

func newContext(t *testing.T, u tele.Update) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return bot.NewContext(u)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		update        tele.Update
		handlerErr    error
		expectedLevel zapcore.Level
		expectedKind  string
	}{
		{
			name:          "text message",
			update:        tele.Update{Message: &tele.Message{Sender: &tele.User{ID: 42}, Text: "a = b"}},
			expectedLevel: zapcore.DebugLevel,
			expectedKind:  "text",
		},
		{
			name: "document",
			update: tele.Update{Message: &tele.Message{
				Sender:   &tele.User{ID: 42},
				Document: &tele.Document{FileName: "words.txt"},
			}},
			expectedLevel: zapcore.DebugLevel,
			expectedKind:  "document",
		},
		{
			name:          "failing callback",
			update:        tele.Update{Callback: &tele.Callback{Sender: &tele.User{ID: 42}, Unique: "reveal"}},
			handlerErr:    errors.New("telegram: bad request"),
			expectedLevel: zapcore.ErrorLevel,
			expectedKind:  "callback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			mw := Logger(zap.New(core))

			called := false
			handler := mw(func(c tele.Context) error {
				called = true
				return tt.handlerErr
			})

			err := handler(newContext(t, tt.update))

			assert.True(t, called)
			assert.Equal(t, tt.handlerErr, err)
			require.Equal(t, 1, logs.Len())

			entry := logs.All()[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, tt.expectedKind, entry.ContextMap()["kind"])
			assert.Equal(t, int64(42), entry.ContextMap()["user_id"])
		})
	}
}
