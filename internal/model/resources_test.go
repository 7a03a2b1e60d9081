package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbxd/internal/model"
)

func TestParseMemory(t *testing.T) {
	tests := map[string]struct {
		mem      string
		expBytes int64
		expErr   bool
	}{
		"No suffix should be bytes.":         {mem: "2048", expBytes: 2048},
		"Bytes suffix.":                      {mem: "100b", expBytes: 100},
		"Kilobytes suffix.":                  {mem: "4k", expBytes: 4 * 1024},
		"Megabytes suffix.":                  {mem: "512m", expBytes: 512 * 1024 * 1024},
		"Gigabytes suffix.":                  {mem: "1g", expBytes: 1024 * 1024 * 1024},
		"Suffix should be case insensitive.": {mem: "2G", expBytes: 2 * 1024 * 1024 * 1024},
		"Garbage should fail.":               {mem: "bad", expErr: true},
		"Decimals should fail.":              {mem: "1.5g", expErr: true},
		"Long suffix should fail.":           {mem: "512mb", expErr: true},
		"Spaces should fail.":                {mem: "512 m", expErr: true},
		"Empty should fail.":                 {mem: "", expErr: true},
		"Negative should fail.":              {mem: "-1m", expErr: true},
		"Overflow should fail.":              {mem: "99999999999999999g", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.ParseMemory(test.mem)

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else if assert.NoError(t, err) {
				assert.Equal(t, test.expBytes, got)
			}
		})
	}
}

func TestCPUToNanoCPUs(t *testing.T) {
	assert.Equal(t, int64(500000000), model.CPUToNanoCPUs(0.5))
	assert.Equal(t, int64(2000000000), model.CPUToNanoCPUs(2))
	assert.Equal(t, int64(0), model.CPUToNanoCPUs(0))
	assert.Equal(t, int64(333333333), model.CPUToNanoCPUs(0.3333333333))
}

func TestValidateCPU(t *testing.T) {
	assert.NoError(t, model.ValidateCPU(0))
	assert.NoError(t, model.ValidateCPU(0.25))
	assert.NoError(t, model.ValidateCPU(9e9))
	assert.ErrorIs(t, model.ValidateCPU(-0.5), model.ErrNotValid)
	assert.ErrorIs(t, model.ValidateCPU(math.NaN()), model.ErrNotValid)
	assert.ErrorIs(t, model.ValidateCPU(math.Inf(-1)), model.ErrNotValid)
	assert.ErrorIs(t, model.ValidateCPU(1e10), model.ErrNotValid)
}

func TestParsePortSpec(t *testing.T) {
	tests := map[string]struct {
		spec    string
		expPort model.PortBinding
		expErr  bool
	}{
		"Host and container ports should map.": {
			spec:    "8080:80",
			expPort: model.PortBinding{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},

		"A bare port should use the same host port.": {
			spec:    "80",
			expPort: model.PortBinding{HostPort: 80, ContainerPort: 80, Protocol: "tcp"},
		},

		"A protocol suffix should override tcp.": {
			spec:    "8080:80/udp",
			expPort: model.PortBinding{HostPort: 8080, ContainerPort: 80, Protocol: "udp"},
		},

		"A bare port with protocol.": {
			spec:    "53/udp",
			expPort: model.PortBinding{HostPort: 53, ContainerPort: 53, Protocol: "udp"},
		},

		"An unknown protocol should fail.": {spec: "80/icmp", expErr: true},
		"A non numeric port should fail.":  {spec: "http", expErr: true},
		"An out of range port should fail.": {spec: "70000", expErr: true},
		"An empty host port should fail.":  {spec: ":80", expErr: true},
		"An empty spec should fail.":       {spec: "", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.ParsePortSpec(test.spec)

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else if assert.NoError(t, err) {
				assert.Equal(t, test.expPort, got)
			}
		})
	}
}

func TestParseVolumeSpec(t *testing.T) {
	v, err := model.ParseVolumeSpec("/host/data:/data")
	require.NoError(t, err)
	assert.Equal(t, model.VolumeMount{HostPath: "/host/data", ContainerPath: "/data"}, v)
	assert.Equal(t, "/host/data:/data", v.Bind())

	v, err = model.ParseVolumeSpec("/host/data:/data:ro")
	require.NoError(t, err)
	assert.True(t, v.ReadOnly)
	assert.Equal(t, "/host/data:/data:ro", v.Bind())

	_, err = model.ParseVolumeSpec("/host/data:data")
	assert.ErrorIs(t, err, model.ErrNotValid)

	_, err = model.ParseVolumeSpec("/host/data:/data:xx")
	assert.ErrorIs(t, err, model.ErrNotValid)
}

func TestParseDependency(t *testing.T) {
	tests := map[string]struct {
		dep    string
		expDep model.DependencySpec
		expErr bool
	}{
		"Type with version.":            {dep: "nodejs:18", expDep: model.DependencySpec{Type: "nodejs", Version: "18"}},
		"Type without version.":         {dep: "mongodb", expDep: model.DependencySpec{Type: "mongodb"}},
		"Type should be lower cased.":   {dep: "PostgreSQL:15", expDep: model.DependencySpec{Type: "postgresql", Version: "15"}},
		"Empty version should fail.":    {dep: "nodejs:", expErr: true},
		"Empty type should fail.":       {dep: ":18", expErr: true},
		"Invalid type should fail.":     {dep: "node js", expErr: true},
		"Shell in version should fail.": {dep: "nodejs:18; rm -rf /", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.ParseDependency(test.dep)

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else if assert.NoError(t, err) {
				assert.Equal(t, test.expDep, got)
				assert.Equal(t, test.expDep.String(), got.String())
			}
		})
	}
}
