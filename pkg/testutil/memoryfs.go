package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/templater/pkg/types"
)

// MemoryFS is an in-memory types.FS for tests. Directories exist
// implicitly once created with MkdirAll or once a file is written
// beneath them.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if data, ok := m.files[name]; ok {
		return memInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if _, ok := m.dirs[name]; ok {
		return memInfo{name: filepath.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	name = filepath.Clean(name)
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = filepath.Clean(name)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[name] = stored
	m.addParents(name)
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	path = filepath.Clean(path)
	m.dirs[path] = struct{}{}
	m.addParents(path)
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	name = filepath.Clean(name)
	if _, ok := m.dirs[name]; !ok && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	seen := make(map[string]fs.DirEntry)
	collect := func(path string, dir bool) {
		rel, err := filepath.Rel(name, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return
		}
		first := strings.Split(rel, string(filepath.Separator))[0]
		if _, ok := seen[first]; !ok {
			seen[first] = memEntry{name: first, dir: dir || first != rel}
		}
	}
	for path := range m.files {
		collect(path, false)
	}
	for path := range m.dirs {
		collect(path, true)
	}

	entries := make([]fs.DirEntry, 0, len(seen))
	for _, entry := range seen {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Files returns the paths of all written files, sorted.
func (m *MemoryFS) Files() []string {
	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (m *MemoryFS) addParents(path string) {
	for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		m.dirs[dir] = struct{}{}
	}
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0644 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() interface{}   { return nil }

type memEntry struct {
	name string
	dir  bool
}

func (e memEntry) Name() string               { return e.name }
func (e memEntry) IsDir() bool                { return e.dir }
func (e memEntry) Type() fs.FileMode          { return 0 }
func (e memEntry) Info() (fs.FileInfo, error) { return memInfo{name: e.name, dir: e.dir}, nil }

var _ types.FS = (*MemoryFS)(nil)
