package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Source is a content tree compiled into the binary whose files can be
// overridden by a same-named file under Dir on disk, so edits show up without
// a rebuild.
type Source struct {
	Dir string
	FS  fs.FS
}

// Prefabs is the yaml content tree.
var Prefabs = Source{Dir: "prefabs", FS: PrefabsFS}

// Load reads a content file, preferring the disk copy.
func (s Source) Load(name string) ([]byte, error) {
	clean := s.clean(name)
	if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(s.FS, clean)
}

// ModTime reports when the disk copy of a content file last changed. It is
// false when only the embedded copy exists.
func (s Source) ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(s.diskPath(s.clean(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// clean turns name into a slash path relative to the tree, dropping a
// leading "<Dir>/" so callers may pass either form.
func (s Source) clean(name string) string {
	if name == "" {
		return ""
	}
	p := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(p, filepath.ToSlash(s.Dir)+"/"); ok {
		return after
	}
	return p
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}

// Load reads a yaml content file from the prefabs tree.
func Load(name string) ([]byte, error) {
	return Prefabs.Load(name)
}

// ModTime reports when the disk copy of a prefabs file last changed.
func ModTime(name string) (time.Time, bool) {
	return Prefabs.ModTime(name)
}
