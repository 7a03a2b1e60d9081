package printer_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/model"
	"github.com/slok/sbxd/internal/printer"
)

func sandboxFixture() model.Sandbox {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Sandbox{
		ID:            "4f2a9c1d7e8b6a5f3c2d1e0f9a8b7c6d",
		Name:          "my-sandbox",
		Status:        model.SandboxStatusRunning,
		Image:         "ubuntu:22.04",
		RestartPolicy: model.RestartPolicyUnlessStopped,
		Ports:         []model.PortBinding{{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"}},
		MemoryBytes:   512 * 1024 * 1024,
		NanoCPUs:      1.5e9,
		CreatedAt:     createdAt,
		StartedAt:     &createdAt,
	}
}

func TestTablePrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintList([]model.Sandbox{sandboxFixture()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "IMAGE", "STATUS", "PORTS", "CREATED"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "4f2a9c1d7e8b  my-sandbox  ubuntu:22.04  running  8080:80/tcp"))
}

func TestTablePrinterPrintListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printer.NewTablePrinter(&buf).PrintList(nil))
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintStatus(sandboxFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Image:      ubuntu:22.04")
	assert.Contains(t, out, "Restart:    unless-stopped")
	assert.Contains(t, out, "Ports:      8080:80/tcp")
	assert.Contains(t, out, "Memory:     512MiB")
	assert.Contains(t, out, "CPUs:       1.5")
	assert.Contains(t, out, "Started:    2026-01-30 10:00:00 UTC")
	assert.NotContains(t, out, "Stopped:")
}

func TestJSONPrinterPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintStatus(sandboxFixture())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "my-sandbox", got["name"])
	assert.Equal(t, "running", got["status"])
	assert.Equal(t, []any{"8080:80/tcp"}, got["ports"])
	assert.Equal(t, float64(512*1024*1024), got["memory_bytes"])
	assert.Equal(t, 1.5, got["cpus"])
	assert.Nil(t, got["stopped_at"])
	assert.NotContains(t, got, "error")
}

func TestTablePrinterPrintFiles(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	mod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := p.PrintFiles([]model.FileEntry{
		{Name: "src", Path: "/app/src", IsDir: true, Permissions: "drwxr-xr-x", Owner: "node", Group: "node", Size: 4096, ModifiedAt: mod},
		{Name: "index.js", Path: "/app/index.js", Permissions: "-rw-r--r--", Owner: "node", Group: "node", Size: 120, ModifiedAt: mod},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "src/")
	assert.Contains(t, out, "120B")
	assert.Contains(t, out, "2024-01-02 03:04:05 UTC")
}

func TestJSONPrinterPrintPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printer.NewJSONPrinter(&buf).PrintPaths(nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
