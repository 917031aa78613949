package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	DataDir string
	Port    int
	Tokens  []testToken
}

type testToken struct {
	Name   string
	Supply string
}

const testData = `
DataDir = "./data"
Port = 8541

[[Tokens]]
Name = "PRI"
Supply = "1000"

[[Tokens]]
Name = "RWD"
Supply = "0"
`

func TestLoadString(t *testing.T) {
	var cfg testConfig
	require.NoError(t, LoadString(testData, &cfg))
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 8541, cfg.Port)
	assert.Equal(t, []testToken{{"PRI", "1000"}, {"RWD", "0"}}, cfg.Tokens)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testData), 0600))

	var cfg testConfig
	require.NoError(t, LoadFile(path, &cfg))
	assert.Len(t, cfg.Tokens, 2)

	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "none.toml"), &cfg))
}

func TestUnknownKey(t *testing.T) {
	var cfg testConfig
	err := LoadString("Prot = 1\n", &cfg)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &testConfig{DataDir: "d", Port: 1}))

	var cfg testConfig
	require.NoError(t, LoadReader(&buf, &cfg))
	assert.Equal(t, "d", cfg.DataDir)
	assert.Equal(t, 1, cfg.Port)
}
