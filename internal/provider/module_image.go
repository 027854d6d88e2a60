package provider

import (
	"errors"
	"io/fs"
	"strings"
)

// ModuleImageRoot is a Root over a host-runtime module image: a
// filesystem of the shape "<module>/<pkg>/<Name>.class" (spec §6: "host
// runtime module image (enumerate modules, read by resource path)"). Any
// fs.FS works: an extracted image directory (os.DirFS), or a packaged one
// (*zip.Reader, which also implements fs.FS) — the root does not care
// which, so the module-image-specific format the real VM ships
// (jrt-fs/jimage) stays external, matching spec §1's decoder boundary.
type ModuleImageRoot struct {
	fsys fs.FS
}

// NewModuleImageRoot wraps fsys as a module image root.
func NewModuleImageRoot(fsys fs.FS) *ModuleImageRoot {
	return &ModuleImageRoot{fsys: fsys}
}

func (r *ModuleImageRoot) GetClassBytes(name string) ([]byte, bool, error) {
	path := normalizeClassName(name) + ".class"
	data, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (r *ModuleImageRoot) ListAll() ([]ClassReference, error) {
	var out []ClassReference
	err := fs.WalkDir(r.fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		out = append(out, ClassReference{Name: strings.TrimSuffix(path, ".class")})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ModuleImageRoot) Close() error { return nil }
