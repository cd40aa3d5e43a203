package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/samber/lo"
)

type jsonChat struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type jsonConversation struct {
	Users []string   `json:"users"`
	Chats []jsonChat `json:"chats"`
}

// WriteConversationJSON writes conv as {"users": [...], "chats": [...]} with
// timestamps in the export layout.
func WriteConversationJSON(w io.Writer, conv *analytics.Conversation[event.Chat]) error {
	users := conv.Participants()
	doc := jsonConversation{
		Users: users[:],
		Chats: lo.Map(conv.Events(), func(c event.Chat, _ int) jsonChat {
			return jsonChat{
				Sender:    c.Sender(),
				Receiver:  c.Receiver(),
				Type:      string(c.Type()),
				Text:      c.Text(),
				Timestamp: event.FormatTimestamp(c.Timestamp()),
			}
		}),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}

// SaveConversationJSON writes conv to dir/<user>_<user>.json and returns the path.
func SaveConversationJSON(dir string, conv *analytics.Conversation[event.Chat]) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	users := conv.Participants()
	name := safeName(users[0]) + "_" + safeName(users[1]) + ".json"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteConversationJSON(f, conv); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, s)
}
