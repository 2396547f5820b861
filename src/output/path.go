package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pixelling/pixelling/src/job"
	"github.com/spf13/afero"
)

const (
	DefaultSuffix    = "_pixelling"
	DefaultExtension = ".png"
)

// Resolve picks the path the result is written to. With Overwrite set the
// requested path is used as is; otherwise the first of path,
// {stem}_1{ext}, {stem}_2{ext}, ... that does not exist yet is returned.
func Resolve(fs afero.Fs, dest job.Destination) (string, error) {
	if dest.Overwrite {
		return dest.Path, nil
	}

	stem, ext := splitExt(dest.Path)
	path := dest.Path
	for i := 1; ; i++ {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}

		path = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

// DefaultPath derives <stem>_pixelling<ext> next to input, falling back to
// .png when input has no extension.
func DefaultPath(input string) (string, error) {
	dir, name := filepath.Split(input)
	stem, ext := splitExt(name)
	if stem == "" {
		return "", job.ContentError("input path %q has no file name", input)
	}
	if ext == "" {
		ext = DefaultExtension
	}

	return filepath.Join(dir, stem+DefaultSuffix+ext), nil
}

// splitExt splits path into the part before the last dot of its final
// element and the extension. Leading dots belong to the name, so
// ".profile" has no extension.
func splitExt(path string) (string, string) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return path, ""
	}

	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return path, ""
	}

	ext := trimmed[idx:]
	return path[:len(path)-len(ext)], ext
}
