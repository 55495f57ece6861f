package contentfs

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultPathCacheSize sizes each of ContentDevice's three lookup caches
// when NewContentDevice is used directly; NewContentDeviceWithCacheSize
// lets a caller (internal/config, via NewOperationsWithCacheSizes) size
// them uniformly instead.
const defaultPathCacheSize = 1 << 15

// ContentDevice owns the ordered list of read-only content roots: later
// roots shadow earlier ones for any path they both contain. It is
// immutable for the process lifetime, so its lookup caches never need
// invalidation.
type ContentDevice struct {
	roots []string

	findFileParent *lru.Cache[string, string] // path -> root containing it as a regular file
	findAnyParent  *lru.Cache[string, string] // path -> root containing it, any type
	isDirCache     *lru.Cache[string, bool]
}

// NewContentDevice builds a device over roots, ordered lowest to highest
// priority (roots[len(roots)-1] shadows everything before it), with each
// lookup cache sized to defaultPathCacheSize.
func NewContentDevice(roots []string) *ContentDevice {
	return NewContentDeviceWithCacheSize(roots, defaultPathCacheSize)
}

// NewContentDeviceWithCacheSize is NewContentDevice with an explicit
// capacity for all three lookup caches; cacheSize <= 0 falls back to
// defaultPathCacheSize.
func NewContentDeviceWithCacheSize(roots []string, cacheSize int) *ContentDevice {
	if cacheSize <= 0 {
		cacheSize = defaultPathCacheSize
	}
	findFileParent, _ := lru.New[string, string](cacheSize)
	findAnyParent, _ := lru.New[string, string](cacheSize)
	isDirCache, _ := lru.New[string, bool](cacheSize)
	return &ContentDevice{
		roots:          roots,
		findFileParent: findFileParent,
		findAnyParent:  findAnyParent,
		isDirCache:     isDirCache,
	}
}

// ListFiles unions directory listings for rel across every root that has
// it, most-recently-shadowing root first; missing roots are tolerated.
func (d *ContentDevice) ListFiles(rel string) ([]string, error) {
	seen := make(map[string]struct{})
	for i := len(d.roots) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(filepath.Join(d.roots[i], rel))
		if err != nil {
			continue
		}
		for _, e := range entries {
			seen[e.Name()] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	return names, nil
}

// findParent locates the highest-priority root containing rel, per
// existence test exists. Results are memoized; content roots are assumed
// immutable for the mount's lifetime so no invalidation is needed.
func (d *ContentDevice) findParent(cache *lru.Cache[string, string], rel string, exists func(string) bool) (string, bool) {
	if root, ok := cache.Get(rel); ok {
		return root, true
	}
	for i := len(d.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(d.roots[i], rel)
		if exists(candidate) {
			cache.Add(rel, d.roots[i])
			return d.roots[i], true
		}
	}
	return "", false
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// FindFileParent returns the highest-priority root containing rel as a
// regular file.
func (d *ContentDevice) FindFileParent(rel string) (string, bool) {
	return d.findParent(d.findFileParent, rel, isRegularFile)
}

// FindAnyParent returns the highest-priority root containing rel, of any
// type.
func (d *ContentDevice) FindAnyParent(rel string) (string, bool) {
	return d.findParent(d.findAnyParent, rel, exists)
}

// IsDir reports whether rel addresses a directory in at least one root.
func (d *ContentDevice) IsDir(rel string) bool {
	if v, ok := d.isDirCache.Get(rel); ok {
		return v
	}
	result := false
	for i := len(d.roots) - 1; i >= 0; i-- {
		info, err := os.Stat(filepath.Join(d.roots[i], rel))
		if err == nil && info.IsDir() {
			result = true
			break
		}
	}
	d.isDirCache.Add(rel, result)
	return result
}

// TryOpenDir returns an overlay ContentDirectory bound to rel if at least
// one root contains rel as a directory, or nil otherwise.
func (d *ContentDevice) TryOpenDir(rel string) *ContentDirectory {
	if !d.IsDir(rel) {
		return nil
	}
	return NewContentDirectory(d, rel)
}
