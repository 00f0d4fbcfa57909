// Package config loads tool-server descriptor files. A descriptor names an
// external capability group (file-system operations, remote repository access)
// together with launcher metadata that the core treats as opaque. Files may be
// JSON or YAML; in both cases the declaration order of the servers section is
// preserved, because downstream registry iteration order is derived from it.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig describes a single tool server. Command, Args and Env are
// pass-through metadata for out-of-scope launchers; the core consumes only
// Name and Description. Values are immutable once loaded.
type ServerConfig struct {
	Name        string            `json:"-" yaml:"-"`
	Command     string            `json:"command" yaml:"command"`
	Args        []string          `json:"args" yaml:"args"`
	Description string            `json:"description" yaml:"description"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// File is the parsed form of one descriptor file. Servers preserves the
// declaration order of the source document.
type File struct {
	Path    string
	Servers []ServerConfig
}

// Get returns the server with the given name, if present.
func (f *File) Get(name string) (ServerConfig, bool) {
	for _, s := range f.Servers {
		if s.Name == name {
			return s, true
		}
	}
	return ServerConfig{}, false
}

// Names returns the server names in declaration order.
func (f *File) Names() []string {
	names := make([]string, len(f.Servers))
	for i, s := range f.Servers {
		names[i] = s.Name
	}
	return names
}

// ConfigurationError reports a missing or malformed descriptor file.
// Loading is fail-fast: the system does not proceed past a ConfigurationError.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Load reads and parses a descriptor file. The format is chosen by extension:
// .yaml / .yml parse as YAML, everything else as JSON. Load performs exactly
// one read and has no other side effects.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "cannot read descriptor file", Err: err}
	}

	var servers []ServerConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		servers, err = parseYAML(data)
	default:
		servers, err = parseJSON(data)
	}
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "malformed descriptor file", Err: err}
	}

	seen := make(map[string]struct{}, len(servers))
	for _, s := range servers {
		if s.Name == "" {
			return nil, &ConfigurationError{Path: path, Reason: "server entry with empty name"}
		}
		if _, ok := seen[s.Name]; ok {
			return nil, &ConfigurationError{Path: path, Reason: fmt.Sprintf("duplicate server name %q", s.Name)}
		}
		seen[s.Name] = struct{}{}
	}

	return &File{Path: path, Servers: servers}, nil
}

// parseJSON walks the document with a token decoder instead of unmarshalling
// into a map, so the key order of the servers object survives.
func parseJSON(data []byte) ([]ServerConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var servers []ServerConfig
	found := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v at top level", keyTok)
		}
		if key != "servers" {
			// Unknown top-level keys are skipped, not rejected.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		found = true
		servers, err = decodeServersObject(dec)
		if err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, fmt.Errorf("missing servers section")
	}
	return servers, nil
}

func decodeServersObject(dec *json.Decoder) ([]ServerConfig, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("servers section must be an object: %w", err)
	}
	var servers []ServerConfig
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := nameTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected server key %v", nameTok)
		}
		var sc ServerConfig
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
		sc.Name = name
		servers = append(servers, sc)
	}
	_, err := dec.Token() // closing brace
	return servers, err
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// parseYAML decodes through yaml.Node, which keeps mapping order.
func parseYAML(data []byte) ([]ServerConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "servers" {
			continue
		}
		serversNode := root.Content[i+1]
		if serversNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("servers section must be a mapping")
		}
		var servers []ServerConfig
		for j := 0; j+1 < len(serversNode.Content); j += 2 {
			name := serversNode.Content[j].Value
			var sc ServerConfig
			if err := serversNode.Content[j+1].Decode(&sc); err != nil {
				return nil, fmt.Errorf("server %q: %w", name, err)
			}
			sc.Name = name
			servers = append(servers, sc)
		}
		return servers, nil
	}
	return nil, fmt.Errorf("missing servers section")
}
