package util

import (
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// WriteTextFileAtomic replaces the content of path with text, readers never see a partial write
func WriteTextFileAtomic(path string, text string) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, strings.NewReader(text))
}
