package contentfs

import (
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/zeldamods/botwfstools/internal/sarc"
)

// defaultArchiveCacheSize bounds how many parsed archives are held in
// memory at once when newArchiveCache is given a non-positive size,
// matching the original implementation's bound on concurrently open
// archives.
const defaultArchiveCacheSize = 64

// parsedArchive pairs a parsed archive with the Directory its archive file
// was opened from, since an archive member's stat is synthesized from the
// archive file's own stat.
type parsedArchive struct {
	archive sarc.Archive
	parent  Directory
}

// archiveCache memoizes archive parsing keyed by full root-relative path.
// Concurrent misses for the same path are deduplicated with singleflight so
// that two lookups racing to open the same archive parse its bytes once.
type archiveCache struct {
	cache   *lru.Cache[string, parsedArchive]
	group   singleflight.Group
	observe func(hit bool)
}

func newArchiveCache(size int) *archiveCache {
	if size <= 0 {
		size = defaultArchiveCacheSize
	}
	c, _ := lru.New[string, parsedArchive](size)
	return &archiveCache{cache: c}
}

// setObserver installs a callback invoked once per getOrParse call with
// whether the lookup hit the cache or required a fresh parse. Nil by
// default, so callers that don't care about cache metrics pay nothing.
func (c *archiveCache) setObserver(observe func(hit bool)) {
	c.observe = observe
}

// getOrParse returns the parsed archive at fullPath, parsing it via open
// (which must open and return a Handle to the raw archive bytes, plus the
// Directory it was opened from) on a cache miss.
func (c *archiveCache) getOrParse(fullPath string, open func() (Handle, Directory, error)) (sarc.Archive, Directory, error) {
	if pa, ok := c.cache.Get(fullPath); ok {
		c.observeHit(true)
		return pa.archive, pa.parent, nil
	}

	result, err, _ := c.group.Do(fullPath, func() (interface{}, error) {
		if pa, ok := c.cache.Get(fullPath); ok {
			c.observeHit(true)
			return pa, nil
		}
		c.observeHit(false)
		h, parent, err := open()
		if err != nil {
			return parsedArchive{}, err
		}
		defer h.Close()

		size, err := h.Size()
		if err != nil {
			return parsedArchive{}, hostErr("stat", fullPath, err)
		}
		buf := make([]byte, size)
		if _, err := readFull(h, buf); err != nil {
			return parsedArchive{}, hostErr("read", fullPath, err)
		}

		arc, err := sarc.Open(buf)
		if err != nil {
			return parsedArchive{}, ErrParseFailure
		}
		pa := parsedArchive{archive: arc, parent: parent}
		c.cache.Add(fullPath, pa)
		return pa, nil
	})
	if err != nil {
		return nil, nil, err
	}
	pa := result.(parsedArchive)
	return pa.archive, pa.parent, nil
}

func (c *archiveCache) observeHit(hit bool) {
	if c.observe != nil {
		c.observe(hit)
	}
}

func readFull(h Handle, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := h.ReadAt(buf[total:], int64(total))
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.EOF
		}
	}
	return total, nil
}
