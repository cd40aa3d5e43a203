// Package open dumps a conversation to JSON and opens it in the user's editor.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/Zuo-Peng/snapsimp/internal/report"
)

// OpenConversation writes the chat conversation between owner and contact to
// outputDir and opens it at the hit chat, or at the top when hitID is 0.
func OpenConversation(db *index.DB, owner, contact, outputDir string, hitID int64) error {
	path, lineNum, err := Dump(db, owner, contact, outputDir, hitID)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}
	return openInEditor(editor, path, lineNum)
}

// Dump writes the conversation JSON and returns its path and the line the
// hit chat starts on.
func Dump(db *index.DB, owner, contact, outputDir string, hitID int64) (string, int, error) {
	chats, err := db.Chats()
	if err != nil {
		return "", 0, fmt.Errorf("load chats: %w", err)
	}
	conv, err := analytics.NewConversation(analytics.Between(owner, contact, chats))
	if err != nil {
		return "", 0, fmt.Errorf("conversation with %s: %w", contact, err)
	}
	path, err := report.SaveConversationJSON(outputDir, conv)
	if err != nil {
		return "", 0, fmt.Errorf("write conversation: %w", err)
	}

	lineNum := 1
	if hitID > 0 {
		_, hitIdx, pos, _, err := db.ChatWindow(contact, hitID, 0)
		if err == nil && hitIdx == 0 {
			lineNum = chatLine(pos)
		}
	}
	return path, lineNum, nil
}

// chatLine is the 1-based line of the i-th chat object in the indented JSON:
// six lines of header, then seven lines per chat.
func chatLine(i int) int {
	return 7 + 7*i
}

func openInEditor(editor, filePath string, lineNum int) error {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
