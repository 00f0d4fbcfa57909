package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "mcp_servers.json", `{
		"servers": {
			"github": {
				"command": "npx",
				"args": ["-y", "@modelcontextprotocol/server-github"],
				"description": "GitHub repository access",
				"env": {"GITHUB_TOKEN": "${GITHUB_TOKEN}"}
			},
			"fs": {
				"command": "npx",
				"args": ["-y", "@modelcontextprotocol/server-filesystem", "workspace"],
				"description": "File system operations"
			}
		}
	}`)

	file, err := Load(path)
	require.NoError(t, err)

	// Declaration order survives JSON decoding.
	assert.Equal(t, []string{"github", "fs"}, file.Names())

	gh, ok := file.Get("github")
	require.True(t, ok)
	assert.Equal(t, "npx", gh.Command)
	assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-github"}, gh.Args)
	assert.Equal(t, "GitHub repository access", gh.Description)
	assert.Equal(t, map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"}, gh.Env)

	fs, ok := file.Get("fs")
	require.True(t, ok)
	assert.Empty(t, fs.Env)

	_, ok = file.Get("missing")
	assert.False(t, ok)
}

func TestLoadJSONIgnoresUnknownTopLevelKeys(t *testing.T) {
	path := writeFile(t, "servers.json", `{
		"version": 2,
		"servers": {"fs": {"command": "x", "description": "d"}}
	}`)

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fs"}, file.Names())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "servers.yaml", `
servers:
  fs:
    command: npx
    args: ["-y", "server-filesystem"]
    description: File system operations
  github:
    command: npx
    description: GitHub repository access
    env:
      GITHUB_TOKEN: secret
`)

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fs", "github"}, file.Names())

	gh, ok := file.Get("github")
	require.True(t, ok)
	assert.Equal(t, "secret", gh.Env["GITHUB_TOKEN"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "cannot read")
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid json", "bad.json", `{"servers": `},
		{"servers not object", "flat.json", `{"servers": ["fs"]}`},
		{"missing servers", "empty.json", `{"other": {}}`},
		{"missing servers yaml", "empty.yaml", `other: {}`},
		{"yaml root not mapping", "list.yaml", `- fs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}
