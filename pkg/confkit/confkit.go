package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath resolves a file path relative to a base directory.
// Environment variables are expanded first; absolute paths are returned
// as-is, relative paths are joined onto the base directory.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// BaseDir returns the directory of the main config file path.
func BaseDir(mainPath string) string {
	return filepath.Dir(mainPath)
}

// Section is a configuration section loaded from a separate file,
// referenced by path from the main config.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves the section's file path against base and loads it
// through the supplied loader. An empty File is a no-op.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}
