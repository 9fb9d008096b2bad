package assets

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Result is the load state of one asset. Asset is set when Ready, Err
// (a *LoadError) when Failed.
type Result struct {
	State State
	Asset *Asset
	Err   error
}

type entry struct {
	name   string
	refs   int
	done   chan struct{}
	result Result
	cancel context.CancelFunc
}

// Cache loads each asset path once and shares the result between every
// holder of a Handle for that path. An entry is dropped, and its load
// cancelled, when its last handle is released.
type Cache struct {
	fsys    fs.FS
	loaders map[Kind]Loader

	mu      sync.Mutex
	entries map[string]*entry
}

type Option func(*Cache)

// WithLoader sets the loader used for kind.
func WithLoader(kind Kind, l Loader) Option {
	return func(c *Cache) {
		c.loaders[kind] = l
	}
}

// NewCache reads assets from fsys. By default GLB and glTF files go to
// GLBLoader and images to a TextureLoader.
func NewCache(fsys fs.FS, opts ...Option) *Cache {
	c := &Cache{
		fsys: fsys,
		loaders: map[Kind]Loader{
			KindGLB:   GLBLoader{},
			KindGLTF:  GLBLoader{},
			KindImage: &TextureLoader{},
		},
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CleanPath maps an asset path such as "/models/chair.glb" to its name in
// the cache's file system.
func CleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// Acquire returns a handle on the asset at p, starting its load if no other
// handle holds it.
func (c *Cache) Acquire(p string) *Handle {
	name := CleanPath(p)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		e = &entry{
			name:   name,
			done:   make(chan struct{}),
			cancel: cancel,
		}
		c.entries[name] = e
		go c.load(ctx, e)
	}
	e.refs++
	return &Handle{cache: c, entry: e}
}

// Len is the number of paths held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Refs is the number of live handles on p.
func (c *Cache) Refs(p string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[CleanPath(p)]; ok {
		return e.refs
	}
	return 0
}

func (c *Cache) load(ctx context.Context, e *entry) {
	defer e.cancel()

	asset, err := c.read(ctx, e.name)
	if err != nil {
		e.result = Result{State: Failed, Err: &LoadError{Path: "/" + e.name, Err: err}}
		log.WithFields(logrus.Fields{"path": e.name, "error": err}).Debug("asset failed")
	} else {
		e.result = Result{State: Ready, Asset: asset}
		log.WithField("path", e.name).Debug("asset ready")
	}
	close(e.done)
}

func (c *Cache) read(ctx context.Context, name string) (*Asset, error) {
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, _ := br.Peek(sniffLen)
	kind := DetectKind(name, head)

	loader, ok := c.loaders[kind]
	if !ok || loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	asset, err := loader.Load(ctx, name, br)
	if err != nil {
		return nil, err
	}
	asset.Path = "/" + name
	asset.Kind = kind
	return asset, nil
}

func (c *Cache) release(e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.refs--
	if e.refs > 0 {
		return
	}
	if c.entries[e.name] == e {
		delete(c.entries, e.name)
	}
	e.cancel()
}

// Handle is one holder's reference to a cached asset.
type Handle struct {
	cache *Cache
	entry *entry
	once  sync.Once
}

// Path is the asset path in its cleaned, rooted form.
func (h *Handle) Path() string {
	return "/" + h.entry.name
}

// Result reports the load state without blocking.
func (h *Handle) Result() Result {
	select {
	case <-h.entry.done:
		return h.entry.result
	default:
		return Result{State: Pending}
	}
}

// Done is closed once the load has finished either way.
func (h *Handle) Done() <-chan struct{} {
	return h.entry.done
}

// Wait blocks until the load finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.entry.done:
		return h.entry.result, nil
	case <-ctx.Done():
		return Result{State: Pending}, ctx.Err()
	}
}

// Release gives the reference back. Further calls do nothing.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.cache.release(h.entry)
	})
}
