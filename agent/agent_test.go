package agent

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/config"
	"roundtable/model"
	"roundtable/registry"
)

func newFactory(t *testing.T) *Factory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.json")
	content := `{"servers": {
		"fs": {"description": "File system operations"},
		"github": {"description": "GitHub repository access"}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := config.Load(path)
	require.NoError(t, err)

	root := t.TempDir()
	reg, err := registry.New(file, func(o *registry.Options) { o.WorkspaceRoot = root })
	require.NoError(t, err)

	return NewFactory(reg)
}

func TestCreateBindsToolsInOrder(t *testing.T) {
	f := newFactory(t)
	llm := model.NewMockModel("m")

	d, err := f.Create("Researcher", "Research Specialist", "You research things.",
		[]string{"search", "readFile", "writeFile"}, llm)
	require.NoError(t, err)

	assert.Equal(t, "Researcher", d.Name())
	assert.Equal(t, "Research Specialist", d.Role())
	assert.Same(t, llm, d.Model())

	tools := d.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "search", tools[0].Name())
	assert.Equal(t, "readFile", tools[1].Name())
	assert.Equal(t, "writeFile", tools[2].Name())
}

func TestCreateSynthesizesPrompt(t *testing.T) {
	f := newFactory(t)

	d, err := f.Create("A", "r", "Base prompt.", []string{"readFile", "search"}, model.NewMockModel("m"))
	require.NoError(t, err)

	prompt := d.SystemPrompt()
	assert.True(t, strings.HasPrefix(prompt, "Base prompt."))
	assert.Contains(t, prompt, "readFile(path)")
	assert.Contains(t, prompt, "search(query)")
	assert.Contains(t, prompt, collaborateInstruction)

	// Catalog enumeration follows the bound-tools order.
	assert.Less(t, strings.Index(prompt, "readFile(path)"), strings.Index(prompt, "search(query)"))
}

func TestCreateWithoutToolsOmitsCatalog(t *testing.T) {
	f := newFactory(t)

	d, err := f.Create("A", "r", "Base prompt.", nil, model.NewMockModel("m"))
	require.NoError(t, err)
	assert.NotContains(t, d.SystemPrompt(), "You can use these tools")
	assert.Contains(t, d.SystemPrompt(), collaborateInstruction)
}

func TestCreateUnknownToolFailsFast(t *testing.T) {
	f := newFactory(t)

	_, err := f.Create("A", "r", "p", []string{"readFile", "teleport"}, model.NewMockModel("m"))
	var capErr *registry.CapabilityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "teleport", capErr.Name)

	// The failed creation must not burn the name.
	_, err = f.Create("A", "r", "p", []string{"readFile"}, model.NewMockModel("m"))
	require.NoError(t, err)
}

func TestDuplicateAgentName(t *testing.T) {
	f := newFactory(t)
	llm := model.NewMockModel("m")

	_, err := f.Create("A", "r", "p", nil, llm)
	require.NoError(t, err)

	_, err = f.Create("A", "other", "p", nil, llm)
	var dupErr *DuplicateAgentError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "A", dupErr.Name)
}

func TestPresets(t *testing.T) {
	research := ResearchTeam()
	require.Len(t, research, 4)
	assert.Equal(t, "Researcher", research[0].Name)
	assert.Equal(t, "Analyst", research[1].Name)
	assert.Equal(t, "TechnicalExpert", research[2].Name)
	assert.Equal(t, "Coordinator", research[3].Name)

	development := DevelopmentTeam()
	require.Len(t, development, 4)
	assert.Equal(t, "Developer", development[0].Name)
	assert.Equal(t, "Operations", development[3].Name)

	for _, p := range append(research, development...) {
		assert.NotEmpty(t, p.Role)
		assert.NotEmpty(t, p.BasePrompt)
	}
}

func TestCreateTeam(t *testing.T) {
	f := newFactory(t)

	agents, err := f.CreateTeam(ResearchTeam(), []string{"readFile", "writeFile"}, model.NewMockModel("m"))
	require.NoError(t, err)
	require.Len(t, agents, 4)
	assert.Equal(t, "Researcher", agents[0].Name())
	assert.Len(t, agents[2].Tools(), 2)

	// Creating the same team twice in one session collides on names.
	_, err = f.CreateTeam(ResearchTeam(), nil, model.NewMockModel("m"))
	var dupErr *DuplicateAgentError
	require.True(t, errors.As(err, &dupErr))
}
