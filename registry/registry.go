// Package registry turns tool-server configuration into safe, callable tools.
// Capability groups are bound through a static table evaluated once at build
// time; every built tool is soft-fail wrapped so that no tool fault can abort
// an orchestrator turn. The registry exclusively owns its tools — agents hold
// references resolved by name, never copies.
package registry

import (
	"fmt"

	"roundtable/config"
	"roundtable/logging"
	"roundtable/tool"
	"roundtable/tool/fs"
	"roundtable/tool/githubrepo"
)

// CapabilityError reports a request for a tool name the registry never built.
// Unlike runtime tool faults this is fail-fast: it aborts agent creation.
type CapabilityError struct {
	Name string
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability unavailable: %q", e.Name)
}

// Info is a name/description pair from a registry snapshot.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Options configure registry construction.
type Options struct {
	// WorkspaceRoot anchors the file-system sandbox.
	WorkspaceRoot string
	// GitHubProvider backs the remote-repository group.
	GitHubProvider githubrepo.Provider
	// Logger receives build-time diagnostics.
	Logger logging.Logger
}

// builder instantiates the fixed tool set of one capability group.
type builder func(o *Options) ([]tool.Tool, error)

// capabilityGroups maps a configured server name to its tool builder.
// Membership of a name in the configuration switches the whole group on.
var capabilityGroups = map[string]builder{
	"fs": func(o *Options) ([]tool.Tool, error) {
		ws, err := fs.NewWorkspace(o.WorkspaceRoot)
		if err != nil {
			return nil, err
		}
		return fs.Tools(ws), nil
	},
	"github": func(o *Options) ([]tool.Tool, error) {
		return githubrepo.Tools(o.GitHubProvider), nil
	},
}

// Registry holds the built tools keyed by name plus the orderings needed for
// deterministic discovery. It is immutable after New and safe for concurrent
// reads.
type Registry struct {
	servers []config.ServerConfig
	order   []string
	tools   map[string]tool.Tool
}

// New builds a registry from loaded configuration. Recognized capability
// groups contribute their fixed tool sets in config iteration order;
// unrecognized server names are ignored for forward compatibility. Building
// performs no I/O, so repeated builds from the same configuration are
// idempotent.
func New(file *config.File, optFns ...func(o *Options)) (*Registry, error) {
	opts := Options{
		WorkspaceRoot:  "workspace",
		GitHubProvider: githubrepo.StubProvider{},
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Registry{
		servers: file.Servers,
		tools:   make(map[string]tool.Tool),
	}

	for _, server := range file.Servers {
		build, ok := capabilityGroups[server.Name]
		if !ok {
			opts.Logger.Debug("registry.group.skipped", "server", server.Name)
			continue
		}
		tools, err := build(&opts)
		if err != nil {
			return nil, fmt.Errorf("build capability group %q: %w", server.Name, err)
		}
		for _, t := range tools {
			if _, exists := r.tools[t.Name()]; exists {
				return nil, fmt.Errorf("duplicate tool name %q", t.Name())
			}
			r.tools[t.Name()] = tool.SoftFail(t)
			r.order = append(r.order, t.Name())
		}
		opts.Logger.Info("registry.group.loaded", "server", server.Name, "tools", len(tools))
	}

	return r, nil
}

// Servers returns the configured descriptors as name/description pairs in
// config order, including entries whose capability group is not recognized.
func (r *Registry) Servers() []Info {
	infos := make([]Info, len(r.servers))
	for i, s := range r.servers {
		infos[i] = Info{Name: s.Name, Description: s.Description}
	}
	return infos
}

// Tools returns an ordered snapshot of the built tools: config iteration
// order first, fixed in-group order second.
func (r *Registry) Tools() []Info {
	infos := make([]Info, len(r.order))
	for i, name := range r.order {
		infos[i] = Info{Name: name, Description: r.tools[name].Description()}
	}
	return infos
}

// Resolve returns the named tool or a *CapabilityError if it was never built.
func (r *Registry) Resolve(name string) (tool.Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, &CapabilityError{Name: name}
	}
	return t, nil
}
