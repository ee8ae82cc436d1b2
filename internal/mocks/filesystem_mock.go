// Package mocks provides in-memory stand-ins for the internal/interfaces
// ports, adapted from the teacher's hand-rolled mocks (no mocking
// framework): tests construct one, seed it with files/dirs, and assert
// against the calls it recorded.
package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// FileSystem implements interfaces.FileSystem entirely in memory.
type FileSystem struct {
	mu    sync.Mutex
	files map[string]*fileEntry
	dirs  map[string]bool

	Calls []string
}

type fileEntry struct {
	data    []byte
	mode    os.FileMode
	modTime time.Time
}

// NewFileSystem creates an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string]*fileEntry),
		dirs:  make(map[string]bool),
	}
}

func (fs *FileSystem) record(format string, args ...interface{}) {
	fs.Calls = append(fs.Calls, fmt.Sprintf(format, args...))
}

// AddFile seeds a file with content and a modification time.
func (fs *FileSystem) AddFile(path string, content []byte, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = &fileEntry{data: content, mode: 0644, modTime: modTime}
	for dir := filepath.Dir(path); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		fs.dirs[dir] = true
	}
}

// AddDir seeds a directory with the given modification time.
func (fs *FileSystem) AddDir(path string, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	fs.files[path+"\x00dirstamp"] = &fileEntry{modTime: modTime}
}

func (fs *FileSystem) Open(name string) (interfaces.File, error) {
	return nil, fmt.Errorf("mocks.FileSystem: Open not supported, use ReadFile")
}

func (fs *FileSystem) Create(name string) (interfaces.File, error) {
	return nil, fmt.Errorf("mocks.FileSystem: Create not supported, use WriteFile")
}

func (fs *FileSystem) Remove(name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Remove(%s)", name)
	delete(fs.files, name)
	delete(fs.dirs, name)
	return nil
}

func (fs *FileSystem) RemoveAll(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("RemoveAll(%s)", path)
	prefix := strings.TrimSuffix(path, "/") + "/"
	for k := range fs.files {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(fs.files, k)
		}
	}
	for k := range fs.dirs {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(fs.dirs, k)
		}
	}
	return nil
}

func (fs *FileSystem) Rename(oldpath, newpath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Rename(%s, %s)", oldpath, newpath)
	if f, ok := fs.files[oldpath]; ok {
		fs.files[newpath] = f
		delete(fs.files, oldpath)
	}
	if _, ok := fs.dirs[oldpath]; ok {
		fs.dirs[newpath] = true
		delete(fs.dirs, oldpath)
	}
	return nil
}

func (fs *FileSystem) Mkdir(name string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Mkdir(%s)", name)
	fs.dirs[name] = true
	return nil
}

func (fs *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("MkdirAll(%s)", path)
	fs.dirs[path] = true
	return nil
}

func (fs *FileSystem) ReadDir(dirname string) ([]os.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("ReadDir(%s)", dirname)

	var entries []os.DirEntry
	for path := range fs.dirs {
		if filepath.Dir(path) == dirname {
			entries = append(entries, mockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}
	for path, f := range fs.files {
		if strings.Contains(path, "\x00") {
			continue
		}
		if filepath.Dir(path) == dirname {
			entries = append(entries, mockDirEntry{name: filepath.Base(path), isDir: false, size: int64(len(f.data))})
		}
	}
	return entries, nil
}

func (fs *FileSystem) Stat(name string) (os.FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Stat(%s)", name)

	if f, ok := fs.files[name]; ok {
		return mockFileInfo{name: filepath.Base(name), size: int64(len(f.data)), modTime: f.modTime}, nil
	}
	if fs.dirs[name] {
		modTime := time.Time{}
		if stamp, ok := fs.files[name+"\x00dirstamp"]; ok {
			modTime = stamp.modTime
		}
		return mockFileInfo{name: filepath.Base(name), isDir: true, modTime: modTime}, nil
	}
	return nil, os.ErrNotExist
}

func (fs *FileSystem) Lstat(name string) (os.FileInfo, error) { return fs.Stat(name) }

func (fs *FileSystem) Exists(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Exists(%s)", path)
	_, fileOK := fs.files[path]
	return fileOK || fs.dirs[path]
}

func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.dirs[path]
}

func (fs *FileSystem) Getwd() (string, error) { return "/mock", nil }
func (fs *FileSystem) Chdir(dir string) error  { return nil }
func (fs *FileSystem) TempDir() string         { return "/mock/tmp" }

func (fs *FileSystem) ReadFile(filename string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("ReadFile(%s)", filename)
	if f, ok := fs.files[filename]; ok {
		return append([]byte(nil), f.data...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *FileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("WriteFile(%s)", filename)
	fs.files[filename] = &fileEntry{data: append([]byte(nil), data...), mode: perm, modTime: time.Now()}
	for dir := filepath.Dir(filename); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		fs.dirs[dir] = true
	}
	return nil
}

func (fs *FileSystem) Symlink(oldname, newname string) error {
	return fmt.Errorf("mocks.FileSystem: Symlink not supported")
}

func (fs *FileSystem) Readlink(name string) (string, error) {
	return "", fmt.Errorf("mocks.FileSystem: Readlink not supported")
}

// Chmod records the mode change; Environment.Remove's read-only clearing
// pass is observable via Calls.
func (fs *FileSystem) Chmod(name string, mode os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.record("Chmod(%s, %v)", name, mode)
	if f, ok := fs.files[name]; ok {
		f.mode = mode
	}
	return nil
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi mockFileInfo) Sys() interface{}   { return nil }

type mockDirEntry struct {
	name  string
	isDir bool
	size  int64
}

func (de mockDirEntry) Name() string { return de.name }
func (de mockDirEntry) IsDir() bool  { return de.isDir }
func (de mockDirEntry) Type() os.FileMode {
	if de.isDir {
		return os.ModeDir
	}
	return 0
}
func (de mockDirEntry) Info() (os.FileInfo, error) {
	return mockFileInfo{name: de.name, isDir: de.isDir, size: de.size}, nil
}

var _ interfaces.FileSystem = (*FileSystem)(nil)
