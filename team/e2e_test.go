package team_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/agent"
	"roundtable/config"
	"roundtable/model"
	"roundtable/registry"
	"roundtable/session"
	"roundtable/team"
)

// TestFullSession drives config -> registry -> agents -> orchestrator -> log
// -> persisted history, with an fs-only descriptor set.
func TestFullSession(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mcp_servers.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"servers": {
			"fs": {
				"command": "npx",
				"args": ["-y", "@modelcontextprotocol/server-filesystem", "workspace"],
				"description": "File system operations"
			}
		}
	}`), 0o644))

	file, err := config.Load(cfgPath)
	require.NoError(t, err)

	reg, err := registry.New(file, func(o *registry.Options) {
		o.WorkspaceRoot = filepath.Join(dir, "workspace")
	})
	require.NoError(t, err)

	// No remote-repository group configured, so its tools do not exist.
	toolNames := make([]string, 0)
	for _, info := range reg.Tools() {
		toolNames = append(toolNames, info.Name)
	}
	assert.Equal(t, []string{"readFile", "writeFile", "listFiles"}, toolNames)
	assert.NotContains(t, toolNames, "listRepos")

	llm := model.NewMockModel("m")
	factory := agent.NewFactory(reg)
	writer, err := factory.Create("Writer", "Author", "You draft text.", toolNames, llm)
	require.NoError(t, err)
	reviewer, err := factory.Create("Reviewer", "Critic", "You review drafts.", toolNames, llm)
	require.NoError(t, err)

	orch, err := team.New([]*agent.Descriptor{writer, reviewer}, team.MaxMessages(4))
	require.NoError(t, err)

	log, err := orch.Run(context.Background(), "Draft and review a short note.")
	require.NoError(t, err)
	assert.Equal(t, team.StateTerminated, orch.State())
	require.Equal(t, 4, log.Len())

	speakers := make([]string, 0, 4)
	for _, m := range log.Messages() {
		speakers = append(speakers, m.Speaker)
	}
	assert.Equal(t, []string{"Writer", "Reviewer", "Writer", "Reviewer"}, speakers)

	histPath := filepath.Join(dir, "history.json")
	store := session.NewFileStore()
	require.NoError(t, store.Save(log, histPath))

	loaded, err := store.Load(histPath)
	require.NoError(t, err)
	assert.Equal(t, log.Messages(), loaded.Messages())
}
