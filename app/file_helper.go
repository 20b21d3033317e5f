package app

import (
	"log/slog"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// WalkOptions controls which entries the walker visits
type WalkOptions struct {
	Extensions       []string
	ExcludeDirs      []string
	RespectGitignore bool
}

// FileHelper walks a source tree and collects the files to scan
type FileHelper struct {
	logger *slog.Logger
}

// NewFileHelper creates a new FileHelper. A nil logger uses slog.Default().
func NewFileHelper(logger *slog.Logger) *FileHelper {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileHelper{logger: logger}
}

// CollectSourceFiles returns the files under root whose extension is
// allowed, depth first in lexical order. Entries that cannot be listed or
// stat'ed are logged and counted in skipped; they never stop the walk.
func (h *FileHelper) CollectSourceFiles(root string, opts WalkOptions) (files []string, skipped int) {
	w := &walk{
		helper:     h,
		root:       root,
		extensions: toSet(opts.Extensions),
		excludes:   toSet(opts.ExcludeDirs),
	}
	if opts.RespectGitignore {
		w.gitignore = loadGitignore(root)
	}

	w.dir(root)
	return w.files, w.skipped
}

type walk struct {
	helper     *FileHelper
	root       string
	extensions map[string]struct{}
	excludes   map[string]struct{}
	gitignore  *ignore.GitIgnore

	files   []string
	skipped int
}

func (w *walk) dir(dir string) {
	// os.ReadDir sorts by name and may return the entries read before an error
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.skip(dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				w.skip(path, err)
				continue
			}
			// Linked directories are not followed
			if info.IsDir() {
				continue
			}
			mode = info.Mode().Type()
		}

		if mode.IsDir() {
			if _, excluded := w.excludes[entry.Name()]; excluded {
				continue
			}
			if w.ignored(path, true) {
				continue
			}
			w.dir(path)
			continue
		}

		if !mode.IsRegular() {
			continue
		}
		if _, ok := w.extensions[filepath.Ext(path)]; !ok {
			continue
		}
		if w.ignored(path, false) {
			continue
		}
		w.files = append(w.files, path)
	}
}

func (w *walk) ignored(path string, isDir bool) bool {
	if w.gitignore == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		return w.gitignore.MatchesPath(rel + "/")
	}
	return w.gitignore.MatchesPath(rel)
}

func (w *walk) skip(path string, err error) {
	w.skipped++
	w.helper.logger.Error("skipping entry", "path", path, "error", err)
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
