package copy_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/app/copy"
	"github.com/slok/sbxd/internal/app/copy/copymock"
	"github.com/slok/sbxd/internal/model"
)

func TestParseTransfer(t *testing.T) {
	tests := map[string]struct {
		src, dst string
		exp      copy.Transfer
		expErr   bool
	}{
		"A sandbox destination should be an upload.": {
			src: "./seed.sql",
			dst: "db:/docker-entrypoint-initdb.d/",
			exp: copy.Transfer{Sandbox: "db", Local: "./seed.sql", Remote: "/docker-entrypoint-initdb.d/", Upload: true},
		},

		"A sandbox source should be a download.": {
			src: "01JQ8ZP4S2:/var/log/app.log",
			dst: "./logs/",
			exp: copy.Transfer{Sandbox: "01JQ8ZP4S2", Local: "./logs/", Remote: "/var/log/app.log"},
		},

		"Two sandbox paths should be rejected.":    {src: "a:/x", dst: "b:/y", expErr: true},
		"Two host paths should be rejected.":       {src: "./x", dst: "./y", expErr: true},
		"A missing sandbox reference should fail.": {src: "./x", dst: ":/y", expErr: true},
		"A relative sandbox path should fail.":     {src: "./x", dst: "web:srv/x", expErr: true},
		"An empty sandbox path should fail.":       {src: "web:", dst: "./x", expErr: true},
		"An empty host path should fail.":          {src: "web:/x", dst: "", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := copy.ParseTransfer(test.src, test.dst)
			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestServiceRun(t *testing.T) {
	hostDir := t.TempDir()
	script := filepath.Join(hostDir, "migrate.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))

	tests := map[string]struct {
		req    copy.Request
		mock   func(m *copymock.MockTransferrer)
		expErr error
	}{
		"Uploads should go to the exact sandbox path.": {
			req: copy.Request{Source: script, Destination: "api:/opt/migrate.sh"},
			mock: func(m *copymock.MockTransferrer) {
				m.On("CopyTo", mock.Anything, "api", script, "/opt/migrate.sh").Once().Return(nil)
			},
		},

		"Uploads into a sandbox directory should keep the file name.": {
			req: copy.Request{Source: script, Destination: "api:/opt/"},
			mock: func(m *copymock.MockTransferrer) {
				m.On("CopyTo", mock.Anything, "api", script, "/opt/migrate.sh").Once().Return(nil)
			},
		},

		"Downloads into a host directory should keep the file name.": {
			req: copy.Request{Source: "api:/srv/report.csv", Destination: hostDir},
			mock: func(m *copymock.MockTransferrer) {
				m.On("CopyFrom", mock.Anything, "api", "/srv/report.csv", filepath.Join(hostDir, "report.csv")).Once().Return(nil)
			},
		},

		"Downloads to a new host file should use that path.": {
			req: copy.Request{Source: "api:/srv/report.csv", Destination: filepath.Join(hostDir, "out.csv")},
			mock: func(m *copymock.MockTransferrer) {
				m.On("CopyFrom", mock.Anything, "api", "/srv/report.csv", filepath.Join(hostDir, "out.csv")).Once().Return(nil)
			},
		},

		"Uploading a missing host file should fail before the transfer.": {
			req:    copy.Request{Source: filepath.Join(hostDir, "missing"), Destination: "api:/opt/"},
			mock:   func(m *copymock.MockTransferrer) {},
			expErr: model.ErrNotFound,
		},

		"Transfer errors should be returned.": {
			req: copy.Request{Source: script, Destination: "api:/opt/"},
			mock: func(m *copymock.MockTransferrer) {
				m.On("CopyTo", mock.Anything, "api", script, "/opt/migrate.sh").Once().Return(model.ErrNotValid)
			},
			expErr: model.ErrNotValid,
		},

		"Invalid arguments should not reach the transferrer.": {
			req:    copy.Request{Source: "./a", Destination: "./b"},
			mock:   func(m *copymock.MockTransferrer) {},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := copymock.NewMockTransferrer(t)
			test.mock(m)

			svc, err := copy.NewService(copy.ServiceConfig{Transferrer: m})
			require.NoError(t, err)

			err = svc.Run(context.TODO(), test.req)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("A transferrer is required.", func(t *testing.T) {
		_, err := copy.NewService(copy.ServiceConfig{})
		assert.Error(t, err)
	})
}
