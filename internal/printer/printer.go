package printer

import "github.com/slok/sbxd/internal/model"

// Printer knows how to print sandbox information in different formats.
type Printer interface {
	PrintList(sandboxes []model.Sandbox) error
	PrintStatus(sandbox model.Sandbox) error
	PrintFiles(entries []model.FileEntry) error
	PrintFile(entry model.FileEntry) error
	PrintPaths(paths []string) error
	PrintMessage(msg string) error
}

// ShortID returns the short form of a runtime ID.
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
