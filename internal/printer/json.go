package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/sbxd/internal/model"
)

// JSONPrinter prints sandbox information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a sandbox in the list output (subset of fields).
type listItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Status    string    `json:"status"`
	Ports     []string  `json:"ports"`
	CreatedAt time.Time `json:"created_at"`
}

type statusOutput struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Image         string     `json:"image"`
	Status        string     `json:"status"`
	RestartPolicy string     `json:"restart_policy"`
	Ports         []string   `json:"ports"`
	MemoryBytes   int64      `json:"memory_bytes"`
	CPUs          float64    `json:"cpus"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at"`
	StoppedAt     *time.Time `json:"stopped_at"`
	Error         string     `json:"error,omitempty"`
}

type fileOutput struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	IsDir       bool      `json:"is_dir"`
	Permissions string    `json:"permissions"`
	Owner       string    `json:"owner"`
	Group       string    `json:"group"`
	Size        int64     `json:"size"`
	ModifiedAt  time.Time `json:"modified_at"`
}

type messageOutput struct {
	Message string `json:"message"`
}

// PrintList prints sandboxes in JSON format with a subset of fields.
func (j *JSONPrinter) PrintList(sandboxes []model.Sandbox) error {
	items := make([]listItem, len(sandboxes))
	for i, s := range sandboxes {
		items[i] = listItem{
			ID:        s.ID,
			Name:      s.Name,
			Image:     s.Image,
			Status:    string(s.Status),
			Ports:     portStrings(s.Ports),
			CreatedAt: s.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintStatus prints detailed sandbox status in JSON format.
func (j *JSONPrinter) PrintStatus(sandbox model.Sandbox) error {
	return j.encode(statusOutput{
		ID:            sandbox.ID,
		Name:          sandbox.Name,
		Image:         sandbox.Image,
		Status:        string(sandbox.Status),
		RestartPolicy: string(sandbox.RestartPolicy),
		Ports:         portStrings(sandbox.Ports),
		MemoryBytes:   sandbox.MemoryBytes,
		CPUs:          float64(sandbox.NanoCPUs) / 1e9,
		CreatedAt:     sandbox.CreatedAt.UTC(),
		StartedAt:     utcPtr(sandbox.StartedAt),
		StoppedAt:     utcPtr(sandbox.StoppedAt),
		Error:         sandbox.Error,
	})
}

// PrintFiles prints directory entries in JSON format.
func (j *JSONPrinter) PrintFiles(entries []model.FileEntry) error {
	items := make([]fileOutput, len(entries))
	for i, e := range entries {
		items[i] = toFileOutput(e)
	}
	return j.encode(items)
}

// PrintFile prints a single entry in JSON format.
func (j *JSONPrinter) PrintFile(entry model.FileEntry) error {
	return j.encode(toFileOutput(entry))
}

// PrintPaths prints paths as a JSON list.
func (j *JSONPrinter) PrintPaths(paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	return j.encode(paths)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toFileOutput(e model.FileEntry) fileOutput {
	return fileOutput{
		Name:        e.Name,
		Path:        e.Path,
		IsDir:       e.IsDir,
		Permissions: e.Permissions,
		Owner:       e.Owner,
		Group:       e.Group,
		Size:        e.Size,
		ModifiedAt:  e.ModifiedAt.UTC(),
	}
}

func portStrings(ports []model.PortBinding) []string {
	ss := make([]string, 0, len(ports))
	for _, p := range ports {
		ss = append(ss, p.String())
	}
	return ss
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
