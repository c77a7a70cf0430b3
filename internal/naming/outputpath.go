package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath builds the destination for inputPath inside outputDir with the
// extension replaced by ext (given without a dot).
//
//	/in/clip.mov, /out, mp4  ->  /out/clip.mp4
//	/in/clip,     /out, mp4  ->  /out/clip.mp4
func OutputPath(inputPath, outputDir, ext string) string {
	return filepath.Join(outputDir, WithExt(filepath.Base(inputPath), ext))
}

// WithExt replaces the extension of name. Dotfiles keep their name as the
// stem.
func WithExt(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return stem + "." + ext
}

// TempPath returns a sibling of path that keeps its extension, so ffmpeg
// still infers the container, and is tagged with id.
//
//	/out/clip.mp4, 1a2b  ->  /out/.clip.qo-1a2b.mp4
func TempPath(path, id string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, "."+stem+".qo-"+id+ext)
}
