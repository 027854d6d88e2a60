package provider

import (
	"archive/zip"
	"io"
	"strings"
)

// ArchiveRoot is a Root over a single zip archive, one class per entry
// (spec §6: "archive (entries by path)"). No zip-handling library appears
// anywhere in the retrieved corpus, so this is built on the standard
// library's archive/zip rather than an ecosystem dependency.
type ArchiveRoot struct {
	reader *zip.ReadCloser
	byName map[string]*zip.File
}

// NewArchiveRoot opens the zip file at path and indexes its ".class"
// entries by internal name.
func NewArchiveRoot(path string) (*ArchiveRoot, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".class") {
			byName[normalizeClassName(strings.TrimSuffix(f.Name, ".class"))] = f
		}
	}
	return &ArchiveRoot{reader: r, byName: byName}, nil
}

func (a *ArchiveRoot) GetClassBytes(name string) ([]byte, bool, error) {
	f, ok := a.byName[normalizeClassName(name)]
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (a *ArchiveRoot) ListAll() ([]ClassReference, error) {
	out := make([]ClassReference, 0, len(a.byName))
	for name := range a.byName {
		out = append(out, ClassReference{Name: name})
	}
	return out, nil
}

func (a *ArchiveRoot) Close() error { return a.reader.Close() }
