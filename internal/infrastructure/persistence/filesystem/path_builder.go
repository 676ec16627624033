package filesystem

import (
	"path/filepath"
	"strings"
)

const stateFileExt = ".json"

// PathBuilder constructs filesystem paths for stored board state
type PathBuilder struct {
	dataRootPath string
}

// NewPathBuilder creates a new PathBuilder
func NewPathBuilder(dataRootPath string) *PathBuilder {
	return &PathBuilder{
		dataRootPath: dataRootPath,
	}
}

// DataRoot returns the directory holding every state file
func (pb *PathBuilder) DataRoot() string {
	return pb.dataRootPath
}

// StateFile returns the path of the file backing key
func (pb *PathBuilder) StateFile(key string) string {
	return filepath.Join(pb.dataRootPath, fileNameFor(key))
}

// fileNameFor keeps keys from escaping the data root
func fileNameFor(key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, key)
	if name == "." || name == ".." {
		name = strings.Repeat("_", len(name))
	}
	return name + stateFileExt
}
