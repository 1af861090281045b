// Package storage defines the string key-value capability the stores persist
// through, plus JSON helpers shared by them.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"taskboard/internal/metrics"
)

// Keys under which the application state is persisted. The names are part of
// the on-disk contract.
const (
	KeyUser             = "user"
	KeyProjects         = "projects"
	KeyTasks            = "tasks"
	KeyTheme            = "theme"
	KeyTelegramBotToken = "telegram_bot_token"
	KeyTelegramChatID   = "telegram_chat_id"
)

// KV is a synchronous string key-value store. A missing key is reported by
// Load as ok == false; implementations also report backend failures that
// way after logging them.
type KV interface {
	Load(ctx context.Context, key string) (value string, ok bool)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ErrCorrupt is returned by LoadJSON when a stored value is not valid JSON
// for the requested type.
var ErrCorrupt = errors.New("corrupt stored value")

// LoadJSON decodes the value stored under key into dst. It returns
// ok == false when the key is absent and ErrCorrupt when decoding fails.
func LoadJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, ok := kv.Load(ctx, key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Save(ctx, key, string(data))
}

// PersistJSON saves v under key. A failed write is logged and counted but not
// returned: the caller's in-memory state stays authoritative.
func PersistJSON(ctx context.Context, kv KV, key string, v any, logger *slog.Logger) {
	if err := SaveJSON(ctx, kv, key, v); err != nil {
		metrics.PersistenceFailures.WithLabelValues(key).Inc()
		logger.Warn("persist failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
