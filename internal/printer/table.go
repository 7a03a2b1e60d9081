package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/slok/sbxd/internal/model"
)

// TablePrinter prints sandbox information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints sandboxes in a table format.
func (t *TablePrinter) PrintList(sandboxes []model.Sandbox) error {
	if len(sandboxes) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tIMAGE\tSTATUS\tPORTS\tCREATED")
	for _, s := range sandboxes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ShortID(s.ID),
			s.Name,
			s.Image,
			s.Status,
			formatPorts(s.Ports),
			humanSince(s.CreatedAt, time.Now()),
		)
	}

	return nil
}

// PrintStatus prints detailed sandbox status.
func (t *TablePrinter) PrintStatus(sandbox model.Sandbox) error {
	fmt.Fprintf(t.writer, "Name:       %s\n", sandbox.Name)
	fmt.Fprintf(t.writer, "ID:         %s\n", sandbox.ID)
	fmt.Fprintf(t.writer, "Image:      %s\n", sandbox.Image)
	fmt.Fprintf(t.writer, "Status:     %s\n", sandbox.Status)
	fmt.Fprintf(t.writer, "Restart:    %s\n", sandbox.RestartPolicy)
	fmt.Fprintf(t.writer, "Ports:      %s\n", formatPorts(sandbox.Ports))
	fmt.Fprintf(t.writer, "Memory:     %s\n", humanLimit(sandbox.MemoryBytes))
	fmt.Fprintf(t.writer, "CPUs:       %s\n", humanCPUs(sandbox.NanoCPUs))
	fmt.Fprintf(t.writer, "Created:    %s\n", timestamp(sandbox.CreatedAt))

	if sandbox.StartedAt != nil {
		fmt.Fprintf(t.writer, "Started:    %s\n", timestamp(*sandbox.StartedAt))
	}

	if sandbox.StoppedAt != nil {
		fmt.Fprintf(t.writer, "Stopped:    %s\n", timestamp(*sandbox.StoppedAt))
	}

	if sandbox.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", sandbox.Error)
	}

	return nil
}

// PrintFiles prints directory entries in a table format.
func (t *TablePrinter) PrintFiles(entries []model.FileEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "PERMISSIONS\tOWNER\tGROUP\tSIZE\tMODIFIED\tNAME")
	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Permissions,
			e.Owner,
			e.Group,
			humanBytes(e.Size),
			timestamp(e.ModifiedAt),
			name,
		)
	}

	return nil
}

// PrintFile prints the information of a single entry.
func (t *TablePrinter) PrintFile(entry model.FileEntry) error {
	kind := "file"
	if entry.IsDir {
		kind = "directory"
	}

	fmt.Fprintf(t.writer, "Path:        %s\n", entry.Path)
	fmt.Fprintf(t.writer, "Type:        %s\n", kind)
	fmt.Fprintf(t.writer, "Permissions: %s\n", entry.Permissions)
	fmt.Fprintf(t.writer, "Owner:       %s:%s\n", entry.Owner, entry.Group)
	fmt.Fprintf(t.writer, "Size:        %s (%d bytes)\n", humanBytes(entry.Size), entry.Size)
	fmt.Fprintf(t.writer, "Modified:    %s\n", timestamp(entry.ModifiedAt))

	return nil
}

// PrintPaths prints one path per line.
func (t *TablePrinter) PrintPaths(paths []string) error {
	for _, p := range paths {
		fmt.Fprintln(t.writer, p)
	}
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func formatPorts(ports []model.PortBinding) string {
	if len(ports) == 0 {
		return "-"
	}

	ss := make([]string, 0, len(ports))
	for _, p := range ports {
		ss = append(ss, p.String())
	}
	return strings.Join(ss, ",")
}
