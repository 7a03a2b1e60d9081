package model

import "time"

// FileEntry is a filesystem entry inside a sandbox.
type FileEntry struct {
	Name        string
	Path        string
	IsDir       bool
	Permissions string
	Owner       string
	Group       string
	Size        int64
	ModifiedAt  time.Time
}
