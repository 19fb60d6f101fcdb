// Package preset provides preset file handling: a saved overlay, mask and
// control state that can be applied to any image.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Version is the preset format written by this build.
const Version = 1

// Ext is the preset file extension.
const Ext = ".snapframe.json"

// ErrVersion is returned for presets written by a newer format.
var ErrVersion = errors.New("preset: unsupported version")

// File represents a preset file.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// State is the editor's serialized state.
	State json.RawMessage `json:"state"`
}

// New creates a preset holding state.
func New(name string, state []byte) *File {
	now := time.Now()
	return &File{
		Version:  Version,
		Name:     name,
		Created:  now,
		Modified: now,
		State:    json.RawMessage(state),
	}
}

// Load loads a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if f.Version < 1 || f.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	if len(f.State) == 0 {
		f.State = json.RawMessage("{}")
	}
	if f.Name == "" {
		f.Name = NameFromPath(path)
	}
	return &f, nil
}

// Save saves the preset to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// NameFromPath derives a display name from a preset path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, Ext) {
		return strings.TrimSuffix(base, Ext)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
