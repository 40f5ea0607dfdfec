package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem resolves slash-separated paths against a project root.
type OSFileSystem struct {
	root string
}

func NewOSFileSystem(root string) *OSFileSystem {
	if root == "" {
		root = "."
	}
	return &OSFileSystem{root: root}
}

func (fs *OSFileSystem) Root() string {
	return fs.root
}

func (fs *OSFileSystem) abs(path string) string {
	return filepath.Join(fs.root, filepath.FromSlash(path))
}

func (fs *OSFileSystem) FS() iofs.FS {
	return os.DirFS(fs.root)
}

func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.abs(path))
}

func (fs *OSFileSystem) ReadDir(path string) ([]iofs.DirEntry, error) {
	return os.ReadDir(fs.abs(path))
}

func (fs *OSFileSystem) FileExists(path string) bool {
	_, err := os.Stat(fs.abs(path))
	return err == nil
}

func (fs *OSFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return os.WriteFile(fs.abs(path), data, perm)
}

func (fs *OSFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return os.MkdirAll(fs.abs(path), perm)
}

func (fs *OSFileSystem) Remove(path string) error {
	return os.Remove(fs.abs(path))
}

func (fs *OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(fs.abs(path))
}

func (fs *OSFileSystem) CopyFile(src, dst string) error {
	srcFile, err := os.Open(fs.abs(src))
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(fs.abs(dst)), 0o755); err != nil {
		return err
	}

	dstFile, err := os.Create(fs.abs(dst))
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(fs.abs(src))
	if err != nil {
		return err
	}

	return os.Chmod(fs.abs(dst), srcInfo.Mode())
}

// WalkDir walks root with slash-separated paths relative to the project root.
func (fs *OSFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return iofs.WalkDir(fs.FS(), root, fn)
}
