// Package scan finds the pages of one or more data exports under a root.
package scan

import (
	"os"
	"path/filepath"
	"sort"
)

type Kind string

const (
	SnapHistory Kind = "snap_history"
	ChatHistory Kind = "chat_history"
	Account     Kind = "account"
)

var fileKinds = map[string]Kind{
	"snap_history.html": SnapHistory,
	"chat_history.html": ChatHistory,
	"account.html":      Account,
}

type FileInfo struct {
	Path  string
	Kind  Kind
	Mtime int64
	Size  int64
}

// ScanRoot walks root and returns every recognised export page, sorted by path.
// A missing root yields no files and no error.
func ScanRoot(root string) ([]FileInfo, error) {
	if root == "" {
		return nil, nil
	}
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		kind, ok := fileKinds[filepath.Base(path)]
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Kind:  kind,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// SourceKey identifies a page relative to root, e.g. "mydata/html/chat_history".
func SourceKey(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel[:len(rel)-len(filepath.Ext(rel))])
}
