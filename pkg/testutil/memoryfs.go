package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Each instance is
// fully isolated; tests construct their own so they can run in parallel
// without sharing state.
//
// Paths are resolved segment by segment against a node tree, so subtree
// operations like RemoveAll affect exactly the subtree: /foo is never
// treated as an ancestor of /foobar.
type MemoryFS struct {
	mu   sync.RWMutex
	root *fileNode
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new, empty in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		root: &fileNode{
			name:     "/",
			mode:     0755 | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		},
	}
}

// segments splits a normalized path into its path components
func segments(path string) []string {
	path = filepath.Clean("/" + path)
	if path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// lookup walks the tree to the node at path, following symlinks in every
// component except the final one, matching how the kernel resolves paths.
// Returns the node and its parent (nil parent for the root).
func (m *MemoryFS) lookup(path string) (node, parent *fileNode, err error) {
	return m.lookupDepth(path, 0)
}

func (m *MemoryFS) lookupDepth(path string, depth int) (node, parent *fileNode, err error) {
	if depth > 16 {
		return nil, nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("too many levels of symbolic links")}
	}

	node = m.root
	walked := "/"
	segs := segments(path)

	for i, seg := range segs {
		if node.isLink {
			dest := node.linkDest
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(walked), dest)
			}
			rest := append([]string{dest}, segs[i:]...)
			return m.lookupDepth(filepath.Join(rest...), depth+1)
		}
		if !node.isDir {
			return nil, nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("not a directory")}
		}
		child, ok := node.children[seg]
		if !ok {
			return nil, nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		parent = node
		node = child
		walked = filepath.Join(walked, seg)
	}
	return node, parent, nil
}

// resolve follows symlink chains starting at path
func (m *MemoryFS) resolve(path string) (*fileNode, error) {
	for i := 0; i < 16; i++ {
		node, _, err := m.lookup(path)
		if err != nil {
			return nil, err
		}
		if !node.isLink {
			return node, nil
		}

		dest := node.linkDest
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("too many levels of symbolic links")}
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(filepath.Clean("/" + name))}, nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(filepath.Clean("/" + name))}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(filepath.Clean("/" + name))
	parent, err := m.resolve(dir)
	if err != nil {
		// Create missing parents so tests can seed files directly
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := m.mkdirAll(dir, 0755); err != nil {
			return err
		}
		parent, err = m.resolve(dir)
		if err != nil {
			return err
		}
	}
	if !parent.isDir {
		return &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if existing, ok := parent.children[base]; ok && existing.isDir {
		return &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
	}

	node := &fileNode{
		name:    base,
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)
	parent.children[base] = node

	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	node := m.root
	walked := "/"

	for _, seg := range segments(path) {
		walked = filepath.Join(walked, seg)

		if child, ok := node.children[seg]; ok {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: walked, Err: errors.New("not a directory")}
			}
			node = child
			continue
		}

		newDir := &fileNode{
			name:     seg,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}
		node.children[seg] = newDir
		node = newDir
	}

	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, _, err := m.lookup(link); err == nil {
		return &fs.PathError{Op: "symlink", Path: link, Err: fs.ErrExist}
	}

	dir := filepath.Dir(filepath.Clean("/" + link))
	parent, _, err := m.lookup(dir)
	if err != nil {
		return err
	}
	if !parent.isDir {
		return &fs.PathError{Op: "symlink", Path: dir, Err: errors.New("not a directory")}
	}

	base := filepath.Base(filepath.Clean("/" + link))
	parent.children[base] = &fileNode{
		name:     base,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}

	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, _, err := m.lookup(name)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}

	return node.linkDest, nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, parent, err := m.lookup(name)
	if err != nil {
		return err
	}
	if parent == nil {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("cannot remove root")}
	}
	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	delete(parent.children, node.name)
	return nil
}

func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, parent, err := m.lookup(path)
	if err != nil {
		// Nothing there is a no-op, like os.RemoveAll
		return nil
	}
	if parent == nil {
		m.root.children = make(map[string]*fileNode)
		return nil
	}

	delete(parent.children, node.name)
	return nil
}

// fileInfo adapts a fileNode to fs.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return nil }

// dirEntry adapts a fileNode to fs.DirEntry
type dirEntry struct {
	name string
	info *fileInfo
}

func (d *dirEntry) Name() string               { return d.name }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }
