package sink

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-hall/domain"
)

func Test_Transcript_File_Lifecycle(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	transcript, err := NewTranscript(dir, slog.Default())
	req.NoError(err)

	started := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	chat := domain.Chat{ID: 7, Name: "friday drinks", CreatedAt: started}
	chat.Start(started)

	req.NoError(transcript.UserJoined(&chat, "Alice"))
	req.NoError(transcript.Message(&chat, "Alice", "first!"))
	req.NoError(transcript.UserLeft(&chat, "Alice"))
	req.NoError(transcript.Ended(&chat, started.Add(time.Hour)))

	// The file handle is set on the chat for the caller to persist.
	req.Equal(filepath.Join(dir, "20250314_150926_chat_7.txt"), chat.Transcript)

	content, err := os.ReadFile(chat.Transcript)
	req.NoError(err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	req.Equal("Chat Name: friday drinks", lines[0])
	req.Equal("Started at: 2025-03-14 15:09:26", lines[1])
	req.Equal("----------------------------------------", lines[2])
	req.Contains(lines[3], `"Alice" has joined`)
	req.Contains(lines[4], "Alice: first!")
	req.Contains(lines[5], `"Alice" left`)
	req.Equal("--- Chat ended at: 2025-03-14 16:09:26 ---", lines[len(lines)-1])
}

func Test_Transcript_Writes_Header_Once_Across_Stale_Copies(t *testing.T) {
	req := require.New(t)
	transcript, err := NewTranscript(t.TempDir(), slog.Default())
	req.NoError(err)

	createdAt := time.Now().UTC()
	// Two callers each hold their own copy of the chat, neither with a
	// transcript path yet; the names they derive are identical.
	mine := domain.Chat{ID: 3, Name: "room", CreatedAt: createdAt}
	theirs := domain.Chat{ID: 3, Name: "room", CreatedAt: createdAt}

	req.NoError(transcript.Message(&mine, "Alice", "hello"))
	req.NoError(transcript.Message(&theirs, "Bob", "hi"))
	req.Equal(mine.Transcript, theirs.Transcript)

	content, err := os.ReadFile(mine.Transcript)
	req.NoError(err)
	req.Equal(1, strings.Count(string(content), "Chat Name:"))
	req.Contains(string(content), "Alice: hello")
	req.Contains(string(content), "Bob: hi")
}

func Test_Transcript_Reuses_Existing_File(t *testing.T) {
	req := require.New(t)
	transcript, err := NewTranscript(t.TempDir(), slog.Default())
	req.NoError(err)

	chat := domain.Chat{ID: 1, Name: "room", CreatedAt: time.Now().UTC()}
	req.NoError(transcript.Message(&chat, "Bob", "one"))
	first := chat.Transcript
	req.NoError(transcript.Message(&chat, "Bob", "two"))
	req.Equal(first, chat.Transcript)

	content, err := os.ReadFile(chat.Transcript)
	req.NoError(err)
	// Single header, both lines.
	req.Equal(1, strings.Count(string(content), "Chat Name:"))
	req.Contains(string(content), "Bob: one")
	req.Contains(string(content), "Bob: two")
}
