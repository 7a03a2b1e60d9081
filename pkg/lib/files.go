package lib

import (
	"context"
	"io"
)

// ListFiles returns the entries of an absolute directory inside a running sandbox.
func (c *Client) ListFiles(ctx context.Context, nameOrID string, dir string) ([]FileEntry, error) {
	entries, err := c.files.List(ctx, nameOrID, dir)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalFileEntries(entries), nil
}

// ReadFile returns the content of a text file. Use [Client.CopyFrom] for binary files.
func (c *Client) ReadFile(ctx context.Context, nameOrID string, file string) (string, error) {
	content, err := c.files.Read(ctx, nameOrID, file)
	if err != nil {
		return "", mapError(err)
	}
	return content, nil
}

// WriteFile replaces the content of a file, its directory must exist.
func (c *Client) WriteFile(ctx context.Context, nameOrID string, file string, content io.Reader) error {
	return mapError(c.files.Write(ctx, nameOrID, file, content))
}

// MakeDir creates a directory and its parents.
func (c *Client) MakeDir(ctx context.Context, nameOrID string, dir string) error {
	return mapError(c.files.Mkdir(ctx, nameOrID, dir))
}

// DeletePath removes a file, or a directory tree when recursive is set.
func (c *Client) DeletePath(ctx context.Context, nameOrID string, path string, recursive bool) error {
	return mapError(c.files.Delete(ctx, nameOrID, path, recursive))
}

// MovePath moves or renames a file or directory.
func (c *Client) MovePath(ctx context.Context, nameOrID string, src, dst string) error {
	return mapError(c.files.Move(ctx, nameOrID, src, dst))
}

// CopyPath copies a file or directory inside the sandbox.
func (c *Client) CopyPath(ctx context.Context, nameOrID string, src, dst string) error {
	return mapError(c.files.Copy(ctx, nameOrID, src, dst))
}

// StatPath returns the information of a single file or directory.
func (c *Client) StatPath(ctx context.Context, nameOrID string, path string) (*FileEntry, error) {
	entry, err := c.files.Stat(ctx, nameOrID, path)
	if err != nil {
		return nil, mapError(err)
	}
	result := fromInternalFileEntry(*entry)
	return &result, nil
}

// SearchFiles returns the regular files under dir whose name matches the
// shell pattern (e.g. `*.js`).
func (c *Client) SearchFiles(ctx context.Context, nameOrID string, dir string, pattern string) ([]string, error) {
	found, err := c.files.Search(ctx, nameOrID, dir, pattern)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}
