package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"taskboard/internal/storage"
)

var (
	// ErrMissingCredentials is returned by Connect when the token or chat id is blank.
	ErrMissingCredentials = errors.New("telegram: bot token and chat id are required")
	// ErrNotConnected is returned when no credentials are saved.
	ErrNotConnected = errors.New("telegram: not connected")
	// ErrEmptyMessage is returned for blank notification text.
	ErrEmptyMessage = errors.New("telegram: empty message")
)

// Credentials identify the bot and the chat it writes to.
type Credentials struct {
	BotToken string
	ChatID   string
}

// MaskedToken is the token prefix shown once the bot is connected.
func (c Credentials) MaskedToken() string {
	const visible = 15
	if len(c.BotToken) <= visible {
		return c.BotToken + "..."
	}
	return c.BotToken[:visible] + "..."
}

// Settings persists the bot credentials as two plain string keys.
type Settings struct {
	kv     storage.KV
	logger *slog.Logger
}

// NewSettings returns settings stored in kv.
func NewSettings(kv storage.KV, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Settings{kv: kv, logger: logger}
}

// Connect saves both credentials. Nothing is written unless both are non-blank.
func (s *Settings) Connect(ctx context.Context, token, chatID string) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(chatID) == "" {
		return ErrMissingCredentials
	}
	for _, pair := range [][2]string{
		{storage.KeyTelegramBotToken, token},
		{storage.KeyTelegramChatID, chatID},
	} {
		if err := s.kv.Save(ctx, pair[0], pair[1]); err != nil {
			s.logger.Warn("save telegram settings failed", slog.String("key", pair[0]), slog.String("error", err.Error()))
			return err
		}
	}
	s.logger.Info("telegram connected", slog.String("chat_id", chatID))
	return nil
}

// Disconnect forgets both credentials.
func (s *Settings) Disconnect(ctx context.Context) error {
	err := errors.Join(
		s.kv.Remove(ctx, storage.KeyTelegramBotToken),
		s.kv.Remove(ctx, storage.KeyTelegramChatID),
	)
	if err != nil {
		s.logger.Warn("clear telegram settings failed", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("telegram disconnected")
	return nil
}

// Credentials returns the saved pair. Both keys must be present and non-empty.
func (s *Settings) Credentials(ctx context.Context) (Credentials, bool) {
	token, ok := s.kv.Load(ctx, storage.KeyTelegramBotToken)
	if !ok || token == "" {
		return Credentials{}, false
	}
	chatID, ok := s.kv.Load(ctx, storage.KeyTelegramChatID)
	if !ok || chatID == "" {
		return Credentials{}, false
	}
	return Credentials{BotToken: token, ChatID: chatID}, true
}

// Sender is the part of Client the notifier uses.
type Sender interface {
	SendMessage(ctx context.Context, token, chatID, text string) error
}

// Notifier sends messages with the saved credentials.
type Notifier struct {
	settings *Settings
	sender   Sender
}

// NewNotifier combines saved settings with a sender.
func NewNotifier(settings *Settings, sender Sender) *Notifier {
	return &Notifier{settings: settings, sender: sender}
}

// Notify sends text once. It fails fast when nothing is connected or the text
// is blank.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	creds, ok := n.settings.Credentials(ctx)
	if !ok {
		return ErrNotConnected
	}
	return n.sender.SendMessage(ctx, creds.BotToken, creds.ChatID, text)
}
