package util

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/git-l10n/po-codec/po"
	"github.com/git-l10n/po-codec/repository"
	log "github.com/sirupsen/logrus"
)

// FileRevision names a file in the worktree (empty Revision) or a file at a
// git revision.
type FileRevision struct {
	Revision string
	File     string
}

func (f FileRevision) String() string {
	if f.Revision == "" {
		return f.File
	}
	return f.Revision + ":" + f.File
}

// ResolveRevisions returns the old and new side of a comparison:
//
//	<old> <new>           two files in the worktree
//	--commit C <file>     file at C~ and at C
//	--since C <file>      file at C and in the worktree
//	<file>                file at HEAD and in the worktree
func ResolveRevisions(commit, since string, args []string) (oldRev, newRev FileRevision, err error) {
	if commit != "" && since != "" {
		return oldRev, newRev, fmt.Errorf("--commit and --since are mutually exclusive")
	}
	switch len(args) {
	case 2:
		if commit != "" || since != "" {
			return oldRev, newRev, fmt.Errorf("revisions are not allowed with two files")
		}
		return FileRevision{File: args[0]}, FileRevision{File: args[1]}, nil
	case 1:
		file := args[0]
		switch {
		case commit != "":
			return FileRevision{commit + "~", file}, FileRevision{commit, file}, nil
		case since != "":
			return FileRevision{since, file}, FileRevision{File: file}, nil
		default:
			return FileRevision{"HEAD", file}, FileRevision{File: file}, nil
		}
	}
	return oldRev, newRev, fmt.Errorf("expected <old> <new> or a single <file>, got %d arguments", len(args))
}

// ReadFileRevision returns the content of f, running "git show" for files
// at a revision.
func ReadFileRevision(f FileRevision) ([]byte, error) {
	if f.Revision == "" {
		return readInput(f.File)
	}
	if err := repository.RequireOpened(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", f, err)
	}
	abs, err := filepath.Abs(f.File)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(repository.WorkDir(), abs)
	if err != nil {
		return nil, fmt.Errorf("%s is not in the worktree: %w", f.File, err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command("git", "show", f.Revision+":"+filepath.ToSlash(rel))
	cmd.Dir = repository.WorkDir()
	cmd.Stderr = &stderr
	data, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("fail to run %s: %v\n%s", cmd.String(), err, bytes.TrimSpace(stderr.Bytes()))
	}
	log.Debugf("read %s using command: %s", f, cmd.String())
	return data, nil
}

// ReadCatalogRevision is ReadCatalog for a file at a git revision.
func ReadCatalogRevision(f FileRevision, opts CatalogOptions) (*po.File, error) {
	data, err := ReadFileRevision(f)
	if err != nil {
		return nil, err
	}
	return DecodeCatalogData(f.String(), data, opts)
}
