package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions ffmpeg can decode as video or image sequences (lowercase, with
// leading dot).
var mediaExtensions = map[string]bool{
	// containers
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".asf":  true,
	".flv":  true,
	".f4v":  true,
	".webm": true,
	".ts":   true,
	".mts":  true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".vob":  true,
	".ogv":  true,
	".3gp":  true,
	".3g2":  true,
	".mxf":  true,
	".dv":   true,
	".y4m":  true,
	".rm":   true,
	".rmvb": true,
	// animated and still images
	".gif":  true,
	".apng": true,
	".webp": true,
	".avif": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsMedia reports whether path has a supported media extension.
func IsMedia(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover lists the media files directly inside dir, sorted
// lexicographically for deterministic processing order. Other regular
// entries are returned in skipped so the caller can say what it left out.
// Subdirectories are not descended into.
func Discover(dir string) (files, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !IsMedia(e.Name()) {
			skipped = append(skipped, e.Name())
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	sort.Strings(skipped)
	return files, skipped, nil
}
