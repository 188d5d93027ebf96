// Package model defines the data structures shared by the bundler.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Dir returns the directory portion of the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Ext returns the file extension of the path, including the dot.
func (p Path) Ext() string {
	return filepath.Ext(string(p))
}

// Target pairs an entry module with the artifact it is bundled into.
type Target struct {
	Entry  Path
	Output Path
}
