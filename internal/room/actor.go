package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/smasonuk/sieroom/internal/assets"
	"github.com/smasonuk/sieroom/internal/config"
	"github.com/smasonuk/sieroom/internal/scenegraph"
)

type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseShown
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseShown:
		return "shown"
	case PhaseFailed:
		return "failed"
	default:
		return "waiting"
	}
}

// Actor is one model placed in the room. It moves once from waiting to
// either shown or failed and then stays there.
type Actor struct {
	Config config.ActorConfig

	mu     sync.Mutex
	handle *assets.Handle
	policy scenegraph.Policy
	phase  Phase
	scene  *scenegraph.Node
	err    error
}

// NewActor starts loading the actor's model from cache.
func NewActor(cfg config.ActorConfig, cache *assets.Cache) *Actor {
	policies := scenegraph.Policies{scenegraph.ShadowPolicy{Cast: true, Receive: true}}
	if cfg.Recolor != nil {
		policies = append(policies, scenegraph.RecolorPolicy{Color: cfg.Recolor.ToRGBA()})
	}
	return &Actor{
		Config: cfg,
		handle: cache.Acquire(cfg.Path),
		policy: policies,
	}
}

// Sync looks at the load result and moves out of waiting when it is known.
// It never blocks.
func (a *Actor) Sync() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != PhaseWaiting {
		return a.phase
	}

	res := a.handle.Result()
	switch res.State {
	case assets.Ready:
		if res.Asset.Scene == nil {
			a.fail(&assets.LoadError{
				Path: a.handle.Path(),
				Err:  fmt.Errorf("%w: %s is not a model", assets.ErrUnsupported, res.Asset.Kind),
			})
			break
		}
		a.scene = scenegraph.Clone(res.Asset.Scene)
		n := scenegraph.ApplyPolicy(a.scene, a.policy)
		a.phase = PhaseShown
		log.WithFields(logrus.Fields{
			"actor":     a.Config.Name,
			"materials": n,
		}).Debug("actor shown")
	case assets.Failed:
		a.fail(res.Err)
	}
	return a.phase
}

func (a *Actor) fail(err error) {
	a.err = err
	a.phase = PhaseFailed
	log.WithFields(logrus.Fields{
		"actor": a.Config.Name,
		"path":  a.Config.Path,
		"error": err,
	}).Warn("model failed to load, showing placeholder")
}

// Wait blocks until the actor leaves the waiting phase or ctx ends.
func (a *Actor) Wait(ctx context.Context) error {
	if _, err := a.handle.Wait(ctx); err != nil {
		return err
	}
	a.Sync()
	return nil
}

func (a *Actor) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Scene is the actor's own treated copy of the model, nil unless shown.
func (a *Actor) Scene() *scenegraph.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scene
}

// Err is the load failure, nil unless failed.
func (a *Actor) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Release returns the actor's hold on its model.
func (a *Actor) Release() {
	a.handle.Release()
}
