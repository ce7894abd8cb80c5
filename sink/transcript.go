// Package sink holds the external write-only targets events flow into.
package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chat-hall/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// ITranscript is the append-only, human-readable log of one chat session.
// Lines are never read back by the server.
type ITranscript interface {
	UserJoined(chat *domain.Chat, nickName string) error
	UserLeft(chat *domain.Chat, nickName string) error
	Message(chat *domain.Chat, nickName, text string) error
	Ended(chat *domain.Chat, endedAt time.Time) error
}

// Transcript writes one text file per chat session under dir. The file is
// created lazily on the first write and its path is recorded on the chat
// record by the caller.
type Transcript struct {
	mu  sync.Mutex
	dir string
	log *slog.Logger
}

func NewTranscript(dir string, log *slog.Logger) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transcript dir: %w", err)
	}
	return &Transcript{dir: dir, log: log}, nil
}

func (t *Transcript) UserJoined(chat *domain.Chat, nickName string) error {
	return t.appendLine(chat, fmt.Sprintf("[%s] %q has joined",
		time.Now().Format(timeLayout), nickName))
}

func (t *Transcript) UserLeft(chat *domain.Chat, nickName string) error {
	return t.appendLine(chat, fmt.Sprintf("[%s] %q left",
		time.Now().Format(timeLayout), nickName))
}

func (t *Transcript) Message(chat *domain.Chat, nickName, text string) error {
	return t.appendLine(chat, fmt.Sprintf("[%s] %s: %s",
		time.Now().Format(timeLayout), nickName, text))
}

func (t *Transcript) Ended(chat *domain.Chat, endedAt time.Time) error {
	return t.appendLine(chat, fmt.Sprintf("\n--- Chat ended at: %s ---",
		endedAt.Format(timeLayout)))
}

// appendLine opens (and if needed creates) the chat's transcript file and
// appends one line. When the chat has no file yet, a fresh one is named
// after the session start time and the chat id, and chat.Transcript is set
// so the caller can persist the handle.
func (t *Transcript) appendLine(chat *domain.Chat, line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if chat.Transcript == "" {
		startedAt := chat.CreatedAt
		if chat.StartedAt != nil {
			startedAt = *chat.StartedAt
		}
		name := fmt.Sprintf("%s_chat_%d.txt", startedAt.Format("20060102_150405"), chat.ID)
		chat.Transcript = filepath.Join(t.dir, name)
	}

	// The chat record may be a stale copy; the file itself decides whether
	// the header is still owed.
	created := false
	if _, err := os.Stat(chat.Transcript); os.IsNotExist(err) {
		created = true
	}

	f, err := os.OpenFile(chat.Transcript, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("transcript open: %w", err)
	}
	defer f.Close()

	if created {
		header := fmt.Sprintf("Chat Name: %s\nStarted at: %s\n%s\n",
			chat.Name, started(chat), "----------------------------------------")
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("transcript header: %w", err)
		}
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("transcript append: %w", err)
	}
	return nil
}

func started(chat *domain.Chat) string {
	if chat.StartedAt == nil {
		return chat.CreatedAt.Format(timeLayout)
	}
	return chat.StartedAt.Format(timeLayout)
}
