package fs

import (
	"errors"
	iofs "io/fs"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	FileExists(path string) bool
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error
	// CopyFile creates the parent directories of dst.
	CopyFile(src, dst string) error
	WalkDir(root string, fn iofs.WalkDirFunc) error
	FS() iofs.FS
}

// Lookup reads name from fsys in a single step. A missing file is reported
// as ok == false with a nil error; any other failure is returned.
func Lookup(fsys iofs.FS, name string) (data []byte, ok bool, err error) {
	data, err = iofs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// LookupFile reports whether name exists as a regular file in fsys.
// Missing files are not an error.
func LookupFile(fsys iofs.FS, name string) (bool, error) {
	info, err := iofs.Stat(fsys, name)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
