package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names the build collaborator expects inside a workspace.
const (
	DescriptorFile   = "topology.json"
	DependenciesFile = "dependencies.json"
)

// Workspace handles per-translation output directories
type Workspace struct {
	BaseOutputDir string
}

// NewWorkspace creates a new workspace manager
func NewWorkspace(baseOutputDir string) *Workspace {
	return &Workspace{
		BaseOutputDir: baseOutputDir,
	}
}

// Dir returns the directory of a translation without creating it
func (ws *Workspace) Dir(translationID string) string {
	return filepath.Join(ws.BaseOutputDir, filepath.Base(translationID))
}

// Create creates the directory for a translation's outputs
func (ws *Workspace) Create(translationID string) (string, error) {
	dir := ws.Dir(translationID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return dir, nil
}

// FilePath generates a full path for an output file
func (ws *Workspace) FilePath(translationID, fileName string) (string, error) {
	dir, err := ws.Create(translationID)
	if err != nil {
		return "", err
	}
	// Clean the filename to remove any path separators
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// WriteJSON encodes v into a file of the translation's workspace
func (ws *Workspace) WriteJSON(translationID, fileName string, v interface{}) (string, error) {
	path, err := ws.FilePath(translationID, fileName)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", fileName, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a translation's workspace
func (ws *Workspace) Remove(translationID string) error {
	return os.RemoveAll(ws.Dir(translationID))
}
