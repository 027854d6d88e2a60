package provider

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DirectoryRoot is a Root over a directory tree of ".class" files named by
// their internal class name (spec §6: "directory tree (filename =
// pkg/Name.class)"). include/exclude are doublestar glob patterns matched
// against the slash-separated internal name (spec supplement: root
// list_all filtering).
type DirectoryRoot struct {
	base    string
	include []string
	exclude []string
	workers int
}

// NewDirectoryRoot returns a root rooted at base. A nil include list means
// "everything not excluded".
func NewDirectoryRoot(base string, include, exclude []string) *DirectoryRoot {
	return &DirectoryRoot{
		base:    base,
		include: include,
		exclude: exclude,
		workers: runtime.NumCPU(),
	}
}

func (d *DirectoryRoot) GetClassBytes(name string) ([]byte, bool, error) {
	path := filepath.Join(d.base, filepath.FromSlash(name)+".class")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (d *DirectoryRoot) matches(name string) bool {
	if len(d.include) > 0 {
		matched := false
		for _, pat := range d.include {
			if ok, _ := doublestar.Match(pat, name); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, pat := range d.exclude {
		if ok, _ := doublestar.Match(pat, name); ok {
			return false
		}
	}
	return true
}

// ListAll walks the directory tree with a small worker pool: one
// goroutine discovers paths, a fixed pool normalizes and filters them
// concurrently. This mirrors the scanner-plus-workers shape of a
// source-tree file walker adapted to a fixed ".class" suffix and a
// class-name glob instead of a language/extension map.
func (d *DirectoryRoot) ListAll() ([]ClassReference, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths := make(chan string, 256)
	refs := make(chan ClassReference, 256)
	var firstErr error
	var errOnce sync.Once

	var workers sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case p, ok := <-paths:
					if !ok {
						return
					}
					name := toInternalName(d.base, p)
					if d.matches(name) {
						select {
						case refs <- ClassReference{Name: name}:
						case <-ctx.Done():
							return
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(paths)
		err := filepath.WalkDir(d.base, func(path string, entry os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !strings.HasSuffix(path, ".class") {
				return nil
			}
			select {
			case paths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			errOnce.Do(func() { firstErr = err })
			cancel()
		}
	}()

	go func() {
		workers.Wait()
		close(refs)
	}()

	var out []ClassReference
	for ref := range refs {
		out = append(out, ref)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func toInternalName(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, ".class")
}

func (d *DirectoryRoot) Close() error { return nil }
