// Package backup snapshots the linkday data directory. Each backup is a
// timestamped directory under backups/ holding a copy of tasks.json and
// a manifest recording when it was taken and what it contains.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"linkday/internal/fsutil"
	"linkday/internal/storage"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	// nameLayout is the backup directory name; a millisecond suffix is
	// appended so back-to-back backups get distinct names.
	nameLayout = "2006-01-02_150405"
)

// dataFiles is what a backup captures, and the restore fallback when a
// backup carries no readable manifest.
var dataFiles = []string{storage.TasksFile}

// Manager creates, lists and restores backups for one data directory.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest is the metadata file written into every backup directory.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo summarizes one backup for listings.
type BackupInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int // "tasks" and "completed" counts
}

func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots the current task data into a new backup directory and
// returns its name. A data directory with no tasks file yet still yields
// a backup; its manifest just lists no files.
func (m *Manager) Create() (string, error) {
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format(nameLayout), now.Nanosecond()/1e6)
	dir := filepath.Join(m.backupDir, name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	man := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      make(map[string]int),
	}

	for _, filename := range dataFiles {
		data, err := os.ReadFile(filepath.Join(m.dataDir, filename))
		if os.IsNotExist(err) {
			continue
		}
		if err == nil {
			err = fsutil.WriteAtomic(filepath.Join(dir, filename), data, 0600)
		}
		if err != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}
		man.Files = append(man.Files, filename)

		if total, done, err := countTasks(data); err == nil {
			man.Stats["tasks"] = total
			man.Stats["completed"] = done
		}
	}

	if err := writeManifest(filepath.Join(dir, ManifestFile), man); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return name, nil
}

// List returns all backups, newest first. Directories that have neither a
// readable manifest nor a timestamp name are skipped.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if info, ok := m.info(entry.Name()); ok {
			backups = append(backups, info)
		}
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore copies a backup's files back into the data directory. The
// current state is snapshotted first so a bad restore is recoverable,
// and each file must parse as JSON before it overwrites anything.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	src := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	files := dataFiles
	var man Manifest
	if err := readManifest(filepath.Join(src, ManifestFile), &man); err == nil {
		files = man.Files
	}

	safety, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range files {
		data, err := os.ReadFile(filepath.Join(src, filename))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safety, err)
		}
		if !json.Valid(data) {
			return fmt.Errorf("backup file %s is invalid (safety backup: %s)", filename, safety)
		}
		if err := fsutil.WriteAtomic(filepath.Join(m.dataDir, filename), data, 0600); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safety, err)
		}
	}
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	dir := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(dir)
}

// Prune deletes all but the keepCount newest backups and reports how many
// were removed.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns summary information about one backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	info, ok := m.info(name)
	if !ok {
		return nil, fmt.Errorf("invalid backup: %s", name)
	}
	return &info, nil
}

// info builds a BackupInfo from the manifest, falling back to the
// timestamp in the directory name when the manifest is unreadable.
func (m *Manager) info(name string) (BackupInfo, bool) {
	dir := filepath.Join(m.backupDir, name)

	var man Manifest
	if err := readManifest(filepath.Join(dir, ManifestFile), &man); err != nil {
		at, parseErr := parseBackupName(name)
		if parseErr != nil {
			return BackupInfo{}, false
		}
		man.CreatedAt = at
		man.Stats = make(map[string]int)
	}
	return BackupInfo{
		Name:      name,
		Path:      dir,
		CreatedAt: man.CreatedAt,
		Stats:     man.Stats,
	}, true
}

// validateBackupName rejects anything that is not a bare timestamp name,
// so a crafted name cannot escape the backups directory.
func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func writeManifest(path string, man Manifest) error {
	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(path, data, 0600)
}

func readManifest(path string, man *Manifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, man)
}

// countTasks reads total and completed counts out of raw tasks.json
// bytes. Only the completed flag is decoded.
func countTasks(data []byte) (total, completed int, err error) {
	var records []struct {
		Completed bool `json:"completed"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, 0, err
	}
	for _, r := range records {
		if r.Completed {
			completed++
		}
	}
	return len(records), completed, nil
}

// parseBackupName turns a backup directory name back into its creation
// time. The millisecond suffix is optional so pre-suffix backups still
// list correctly.
func parseBackupName(name string) (time.Time, error) {
	stamp, ms := name, 0
	if len(name) > len(nameLayout) {
		suffix := name[len(nameLayout):]
		if len(suffix) != 4 || suffix[0] != '_' {
			return time.Time{}, fmt.Errorf("malformed backup name %q", name)
		}
		n, err := strconv.Atoi(suffix[1:])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("malformed backup name %q", name)
		}
		stamp, ms = name[:len(nameLayout)], n
	}

	at, err := time.Parse(nameLayout, stamp)
	if err != nil {
		return time.Time{}, err
	}
	return at.Add(time.Duration(ms) * time.Millisecond), nil
}
