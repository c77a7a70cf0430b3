package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Claims hands out destination paths so that no two inputs of a batch write
// to the same file, e.g. clip.mov and clip.mkv both converting to clip.mp4.
// Claims are compared case-insensitively because the common desktop
// filesystems fold case. Safe for concurrent use.
type Claims struct {
	mu     sync.Mutex
	owners map[string]string // folded output path → input that owns it
}

// NewClaims returns an empty claim set.
func NewClaims() *Claims {
	return &Claims{owners: make(map[string]string)}
}

// Claim reserves want for input and returns it. If another input already
// holds want, the first free "<stem> - dupN<ext>" sibling is reserved
// instead. Claiming the same path twice for one input is a no-op.
func (c *Claims) Claim(input, want string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.take(input, want) {
		return want
	}
	dir, base := filepath.Split(want)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, n, ext))
		if c.take(input, candidate) {
			return candidate
		}
	}
}

func (c *Claims) take(input, path string) bool {
	key := foldKey(path)
	owner, ok := c.owners[key]
	if ok && owner != input {
		return false
	}
	c.owners[key] = input
	return true
}

// foldKey makes relative and absolute spellings of one file compare equal.
func foldKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return strings.ToLower(filepath.Clean(path))
}

// Len reports how many distinct paths are claimed.
func (c *Claims) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.owners)
}
