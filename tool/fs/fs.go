// Package fs implements the workspace file-system capability group: three
// tools (readFile, writeFile, listFiles) whose path arguments are confined to
// a single sandbox root. Containment is checked before any I/O occurs.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roundtable/tool"
)

// PathEscapeError reports a path argument that resolves outside the sandbox
// root. The corresponding tool call fails before touching the file system;
// at the registry boundary the error is soft-failed into text.
type PathEscapeError struct {
	Path string
}

// Error implements the error interface.
func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("path escapes workspace root: %s", e.Path)
}

// Workspace is the sandbox root all file-tool paths must resolve within.
// The directory itself is created lazily on first write.
type Workspace struct {
	root string
}

// NewWorkspace builds a Workspace anchored at root. The root does not need
// to exist yet.
func NewWorkspace(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Workspace{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute sandbox root.
func (w *Workspace) Root() string { return w.root }

// Resolve maps a relative tool path onto the sandbox. Absolute paths and
// paths whose cleaned form leaves the root fail with *PathEscapeError.
func (w *Workspace) Resolve(rel string) (string, error) {
	if rel == "" {
		rel = "."
	}
	if filepath.IsAbs(rel) {
		return "", &PathEscapeError{Path: rel}
	}
	p := filepath.Join(w.root, rel)
	if p != w.root && !strings.HasPrefix(p, w.root+string(filepath.Separator)) {
		return "", &PathEscapeError{Path: rel}
	}
	return p, nil
}

// ReadFile returns the content of a workspace file, or a not-found message.
func (w *Workspace) ReadFile(path string) (string, error) {
	p, err := w.Resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return fmt.Sprintf("File not found: %s", path), nil
	}
	if err != nil {
		return "", tool.NewToolError("readFile", err.Error(), "EXECUTION_ERROR")
	}
	return string(data), nil
}

// WriteFile writes content to a workspace file, creating intermediate
// directories and overwriting existing content.
func (w *Workspace) WriteFile(path, content string) (string, error) {
	p, err := w.Resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", tool.NewToolError("writeFile", err.Error(), "EXECUTION_ERROR")
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return "", tool.NewToolError("writeFile", err.Error(), "EXECUTION_ERROR")
	}
	return fmt.Sprintf("File written successfully: %s", path), nil
}

// ListFiles enumerates the entries of a workspace directory as a
// comma-joined list, or a not-found message.
func (w *Workspace) ListFiles(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	p, err := w.Resolve(dir)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		// Missing or not a directory read the same to the agent.
		return fmt.Sprintf("Directory not found: %s", dir), nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return fmt.Sprintf("Files in %s: %s", dir, strings.Join(names, ", ")), nil
}

// Tools returns the file-system capability group bound to the workspace, in
// fixed order.
func Tools(w *Workspace) []tool.Tool {
	return []tool.Tool{
		tool.NewFunc(
			"readFile",
			"readFile(path): Read file contents from the workspace",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{"type": "string", "description": "Path relative to the workspace root"},
				},
				"required": []string{"path"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return w.ReadFile(tool.StringArg(args, "path", ""))
			},
		),
		tool.NewFunc(
			"writeFile",
			"writeFile(path, content): Write content to a file in the workspace",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path":    map[string]any{"type": "string", "description": "Path relative to the workspace root"},
					"content": map[string]any{"type": "string", "description": "Content to write"},
				},
				"required": []string{"path", "content"},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return w.WriteFile(tool.StringArg(args, "path", ""), tool.StringArg(args, "content", ""))
			},
		),
		tool.NewFunc(
			"listFiles",
			"listFiles(directory): List files in a workspace directory",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"directory": map[string]any{"type": "string", "description": "Directory relative to the workspace root, defaults to \".\""},
				},
			},
			func(ctx context.Context, args map[string]any) (string, error) {
				return w.ListFiles(tool.StringArg(args, "directory", "."))
			},
		),
	}
}
