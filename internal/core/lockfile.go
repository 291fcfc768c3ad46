package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LockFileName is the project-level record of installed skills.
const LockFileName = "skilldock.lock.json"

const lockVersion = 1

// LockFile records which skills were installed into a project and where
// they came from. It is record keeping, not pinning: reinstalls always
// overwrite regardless of the recorded entry.
type LockFile struct {
	LockVersion int           `json:"lockVersion"`
	Skills      []LockedSkill `json:"skills"`
}

// LockedSkill is one recorded skill installation.
type LockedSkill struct {
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Agents      []string  `json:"agents"`
	InstalledAt time.Time `json:"installedAt"`
}

// LoadLockFile reads the lock file in projectDir. A missing file yields an
// empty lock, not an error.
func LoadLockFile(projectDir string) (*LockFile, error) {
	path := filepath.Join(projectDir, LockFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LockFile{LockVersion: lockVersion}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var lf LockFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &lf, nil
}

// Save writes the lock file into projectDir with stable ordering.
func (lf *LockFile) Save(projectDir string) error {
	lf.LockVersion = lockVersion
	sort.Slice(lf.Skills, func(i, j int) bool { return lf.Skills[i].Name < lf.Skills[j].Name })

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(projectDir, LockFileName)
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Upsert records a skill installation, replacing any entry with the same name.
func (lf *LockFile) Upsert(entry LockedSkill) {
	for i, s := range lf.Skills {
		if s.Name == entry.Name {
			lf.Skills[i] = entry
			return
		}
	}
	lf.Skills = append(lf.Skills, entry)
}
