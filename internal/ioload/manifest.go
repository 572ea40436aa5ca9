package ioload

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file that keeps load status of every file in an
// output directory.
const ManifestName = ".load-manifest.yaml"

// Entry is the load status of one file.
type Entry struct {
	Status    lifecycle.Status `yaml:"status"`
	Table     string           `yaml:"table"`
	Attempts  int              `yaml:"attempts"`
	Rows      int64            `yaml:"rows,omitempty"`
	Error     string           `yaml:"error,omitempty"`
	RunID     string           `yaml:"run_id,omitempty"`
	UpdatedAt time.Time        `yaml:"updated_at"`
}

// Manifest maps file names to their load status. Valid statuses are
// pending, loaded and failed.
type Manifest struct {
	path  string
	Files map[string]*Entry `yaml:"files"`
}

// ReadManifest reads the manifest of dir. A missing manifest is empty.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	res := &Manifest{path: path, Files: make(map[string]*Entry)}

	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return nil, ManifestError(path, err)
	}
	if err = yaml.Unmarshal(bs, res); err != nil {
		return nil, ManifestError(path, err)
	}
	if res.Files == nil {
		res.Files = make(map[string]*Entry)
	}
	return res, nil
}

// Entry returns the status of a file.
func (m *Manifest) Entry(file string) (Entry, bool) {
	e, ok := m.Files[file]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// MarkPending registers a file. Files known already keep their status
// unless they were loaded.
func (m *Manifest) MarkPending(file, table string) {
	e, ok := m.Files[file]
	if ok && e.Status != lifecycle.StatusLoaded {
		return
	}
	if !ok {
		e = &Entry{}
		m.Files[file] = e
	}
	e.Status = lifecycle.StatusPending
	e.Table = table
	e.Error = ""
	e.UpdatedAt = time.Now().UTC()
}

// MarkLoaded records a committed file. The attempt counter grows unless
// the file was only reconciled with the database.
func (m *Manifest) MarkLoaded(file string, rows int64, runID string, attempt bool) {
	e := m.entry(file)
	e.Status = lifecycle.StatusLoaded
	if attempt {
		e.Attempts++
	}
	e.Rows = rows
	e.Error = ""
	e.RunID = runID
	e.UpdatedAt = time.Now().UTC()
}

// MarkFailed records a failed attempt.
func (m *Manifest) MarkFailed(file string, err error, runID string) {
	e := m.entry(file)
	e.Status = lifecycle.StatusFailed
	e.Attempts++
	if err != nil {
		e.Error = err.Error()
	}
	e.RunID = runID
	e.UpdatedAt = time.Now().UTC()
}

func (m *Manifest) entry(file string) *Entry {
	e, ok := m.Files[file]
	if !ok {
		e = &Entry{}
		m.Files[file] = e
	}
	return e
}

// Save writes the manifest through a temporary file.
func (m *Manifest) Save() error {
	bs, err := yaml.Marshal(m)
	if err != nil {
		return ManifestError(m.path, err)
	}
	tmp := m.path + ".tmp"
	if err = os.WriteFile(tmp, bs, 0644); err != nil {
		return ManifestError(m.path, err)
	}
	if err = os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return ManifestError(m.path, err)
	}
	return nil
}
