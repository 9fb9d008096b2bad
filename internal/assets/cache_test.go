package assets

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/sieroom/internal/scenegraph"
)

// gatedLoader holds every load until release is closed or the load is cancelled.
type gatedLoader struct {
	release chan struct{}
	calls   atomic.Int32
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{release: make(chan struct{})}
}

func (g *gatedLoader) Load(ctx context.Context, path string, r io.Reader) (*Asset, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
		return &Asset{Scene: scenegraph.NewNode(path)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func waitResult(t *testing.T, h *Handle) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	require.NoError(t, err)
	return res
}

func modelFS() fstest.MapFS {
	return fstest.MapFS{
		"models/a.glb": {Data: []byte("a")},
		"models/b.glb": {Data: []byte("b")},
		"notes.txt":    {Data: []byte("hello")},
	}
}

func TestAcquireSharesOneLoad(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(modelFS(), WithLoader(KindGLB, loader))

	h1 := cache.Acquire("/models/a.glb")
	h2 := cache.Acquire("models/a.glb")
	assert.Equal(t, Pending, h1.Result().State)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 2, cache.Refs("/models/a.glb"))

	close(loader.release)
	r1 := waitResult(t, h1)
	r2 := waitResult(t, h2)

	assert.Equal(t, Ready, r1.State)
	assert.Same(t, r1.Asset, r2.Asset)
	assert.Equal(t, "/models/a.glb", r1.Asset.Path)
	assert.Equal(t, KindGLB, r1.Asset.Kind)
	assert.Equal(t, int32(1), loader.calls.Load())
	assert.Equal(t, "/models/a.glb", h2.Path())
}

func TestLastReleaseEvictsAndCancels(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(modelFS(), WithLoader(KindGLB, loader))

	h1 := cache.Acquire("/models/a.glb")
	h2 := cache.Acquire("/models/a.glb")

	h1.Release()
	h1.Release()
	assert.Equal(t, 1, cache.Refs("/models/a.glb"))

	h2.Release()
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 0, cache.Refs("/models/a.glb"))

	res := waitResult(t, h2)
	assert.Equal(t, Failed, res.State)
	assert.ErrorIs(t, res.Err, context.Canceled)

	// a new holder starts a fresh load
	h3 := cache.Acquire("/models/a.glb")
	defer h3.Release()
	assert.Equal(t, Pending, h3.Result().State)
	assert.Equal(t, 1, cache.Len())
}

func TestIndependentPaths(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(modelFS(), WithLoader(KindGLB, loader))

	a := cache.Acquire("/models/a.glb")
	b := cache.Acquire("/models/b.glb")
	assert.Equal(t, 2, cache.Len())

	b.Release()
	close(loader.release)
	assert.Equal(t, Ready, waitResult(t, a).State)
	assert.Equal(t, 1, cache.Len())
}

func TestLoadFailures(t *testing.T) {
	cache := NewCache(modelFS())

	testCases := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"Missing file", "/models/missing.glb", fs.ErrNotExist},
		{"Unknown kind", "/notes.txt", ErrUnsupported},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := cache.Acquire(tc.path)
			defer h.Release()

			res := waitResult(t, h)
			require.Equal(t, Failed, res.State)
			assert.ErrorIs(t, res.Err, tc.wantErr)

			var loadErr *LoadError
			require.True(t, errors.As(res.Err, &loadErr))
			assert.Equal(t, tc.path, loadErr.Path)
			assert.Contains(t, loadErr.Error(), tc.path)
		})
	}
}

func TestWaitHonoursContext(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(modelFS(), WithLoader(KindGLB, loader))
	h := cache.Acquire("/models/a.glb")
	defer h.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Pending, res.State)

	select {
	case <-h.Done():
		t.Fatal("load finished before release")
	default:
	}
}

func TestCleanPath(t *testing.T) {
	testCases := map[string]string{
		"/models/a.glb":     "models/a.glb",
		"models/a.glb":      "models/a.glb",
		"/models/../a.glb":  "a.glb",
		"/../../etc/passwd": "etc/passwd",
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, CleanPath(in), in)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
}
