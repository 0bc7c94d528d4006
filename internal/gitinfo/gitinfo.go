// Package gitinfo reads the current branch of the repository containing a
// file straight from .git/HEAD, without running git.
package gitinfo

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Branch returns the checked-out branch for path, "detached:<sha>" for a
// detached HEAD, or "" outside a repository.
func Branch(path string) string {
	gitDir, err := findGitDir(path)
	if err != nil || gitDir == "" {
		return ""
	}
	branch, err := readHead(gitDir)
	if err != nil {
		return ""
	}
	return branch
}

func findGitDir(path string) (string, error) {
	start, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// A file that does not exist yet still belongs to its directory.
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		start = filepath.Dir(start)
	}
	for {
		gitPath := filepath.Join(start, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() {
				return gitPath, nil
			}
			if info.Mode().IsRegular() {
				data, err := os.ReadFile(gitPath)
				if err != nil {
					return "", err
				}
				line := strings.TrimSpace(string(data))
				const prefix = "gitdir:"
				if strings.HasPrefix(line, prefix) {
					dir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
					if !filepath.IsAbs(dir) {
						dir = filepath.Join(start, dir)
					}
					return dir, nil
				}
			}
		}
		parent := filepath.Dir(start)
		if parent == start {
			break
		}
		start = parent
	}
	return "", errors.New("git dir not found")
}

func readHead(gitDir string) (string, error) {
	headPath := filepath.Join(gitDir, "HEAD")
	f, err := os.Open(headPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", errors.New("empty HEAD")
	}
	line := strings.TrimSpace(scanner.Text())
	const refPrefix = "ref:"
	if strings.HasPrefix(line, refPrefix) {
		ref := strings.TrimSpace(strings.TrimPrefix(line, refPrefix))
		if name, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
			return name, nil
		}
		return filepath.Base(ref), nil
	}
	if len(line) >= 7 {
		return "detached:" + line[:7], nil
	}
	return "detached", nil
}

// Watcher caches the branch and re-reads it at most once per interval.
type Watcher struct {
	path     string
	interval time.Duration
	now      func() time.Time

	branch  string
	checked time.Time
}

func NewWatcher(path string, interval time.Duration) *Watcher {
	return &Watcher{path: path, interval: interval, now: time.Now}
}

// Branch returns the cached branch, refreshing it when it is stale.
func (w *Watcher) Branch() string {
	if w == nil || w.path == "" {
		return ""
	}
	now := w.now()
	if w.checked.IsZero() || now.Sub(w.checked) >= w.interval {
		w.branch = Branch(w.path)
		w.checked = now
	}
	return w.branch
}
