// Package repository locates the git worktree po-codec runs in.
package repository

import (
	"fmt"
	"path/filepath"

	"github.com/jiangxin/goconfig"
	log "github.com/sirupsen/logrus"
)

// ConfigFileName is the repository-level configuration file, looked up at
// the root of the worktree.
const ConfigFileName = "po-codec.yaml"

// Repository holds repository and error.
type Repository struct {
	repository *goconfig.Repository
	error      error
}

var theRepository Repository

// Open will try to find repository in dir.
func (v *Repository) Open(dir string) error {
	v.repository, v.error = goconfig.FindRepository(dir)
	return v.error
}

// OpenRepository will try to find repository in dir. Running outside of a
// worktree is not an error: see Opened.
func OpenRepository(dir string) {
	if err := theRepository.Open(dir); err != nil {
		log.Debugf("no git repository found: %s", err)
	}
}

// Opened returns true if a repository was found by OpenRepository.
func Opened() bool {
	return theRepository.error == nil && theRepository.repository != nil
}

// RequireOpened returns an error if no repository was found.
func RequireOpened() error {
	if !Opened() {
		if theRepository.error != nil {
			return theRepository.error
		}
		return fmt.Errorf("not in a git repository")
	}
	return nil
}

// WorkDir returns root dir of worktree, or "" outside of a repository.
func WorkDir() string {
	if !Opened() {
		return ""
	}
	return theRepository.repository.WorkDir()
}

// ConfigFile returns the path of the repository-level configuration file,
// or "" outside of a repository.
func ConfigFile() string {
	if !Opened() {
		return ""
	}
	return filepath.Join(theRepository.repository.WorkDir(), ConfigFileName)
}

// ConfigBool reads a boolean from the git config of the repository.
func ConfigBool(key string, defaultValue bool) bool {
	if !Opened() {
		return defaultValue
	}
	return theRepository.repository.Config().GetBool(key, defaultValue)
}
