package judge

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
)

// DownloadCache tracks problem samples downloaded during the lifetime of a
// process. Each problem URL maps to its own directory under the cache root.
// A DownloadCache is safe for concurrent use.
type DownloadCache struct {
	root string

	mu      sync.Mutex
	results map[string]error
}

// NewDownloadCache creates a cache rooted at dir.
func NewDownloadCache(dir string) *DownloadCache {
	return &DownloadCache{
		root:    dir,
		results: make(map[string]error),
	}
}

// Root returns the cache root directory.
func (c *DownloadCache) Root() string {
	return c.root
}

// Dir returns the sample directory of a problem URL.
func (c *DownloadCache) Dir(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.root, hex.EncodeToString(sum[:])[:16])
}

// Fetch calls download for url unless a previous call in this process already
// did, returning the recorded outcome. Samples left on disk by an earlier
// process are reused without downloading.
func (c *DownloadCache) Fetch(url string, download func(dir string) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err, ok := c.results[url]; ok {
		return err
	}

	dir := c.Dir(url)
	var err error
	if samples, loadErr := LoadSamples(dir); loadErr != nil || len(samples) == 0 {
		if err = os.MkdirAll(dir, 0o755); err == nil {
			err = download(dir)
		}
	}
	c.results[url] = err
	return err
}
