// Package room composes the login room: a fixed shell of floor and walls,
// the logo, and the model actors behind a boundary that isolates their
// load failures.
package room

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/smasonuk/sieroom/internal/assets"
	"github.com/smasonuk/sieroom/internal/config"
)

type Room struct {
	cfg      config.SceneConfig
	logo     *assets.Handle
	logoDone bool
	boundary *Boundary
	settled  bool
	version  int
}

// New places every enabled actor and starts loading all assets from cache.
func New(cfg config.SceneConfig, cache *assets.Cache) *Room {
	var actors []*Actor
	for _, a := range cfg.EnabledActors() {
		actors = append(actors, NewActor(a, cache))
	}

	r := &Room{
		cfg:      cfg,
		boundary: NewBoundary(actors...),
	}
	if cfg.Logo.Texture != "" {
		r.logo = cache.Acquire(cfg.Logo.Texture)
	}

	log.WithFields(logrus.Fields{
		"actors": len(actors),
		"logo":   cfg.Logo.Texture,
	}).Info("room created")
	return r
}

// Sync advances asset loading without blocking. It reports whether the
// tree changed since the previous call.
func (r *Room) Sync() bool {
	changed := false

	if !r.logoDone && r.logo != nil {
		res := r.logo.Result()
		switch res.State {
		case assets.Ready:
			r.logoDone = true
			changed = true
		case assets.Failed:
			r.logoDone = true
			log.WithFields(logrus.Fields{
				"path":  r.cfg.Logo.Texture,
				"error": res.Err,
			}).Warn("logo texture failed to load, drawing the plane without it")
		}
	}

	if !r.settled && r.boundary.Sync() {
		r.settled = true
		changed = true
		log.Info("all models settled")
	}

	if changed {
		r.version++
	}
	return changed
}

// Version increases every time Sync reports a change.
func (r *Room) Version() int {
	return r.version
}

// Settled is true once no actor is waiting.
func (r *Room) Settled() bool {
	return r.boundary.Settled()
}

func (r *Room) Actors() []*Actor {
	return r.boundary.Actors()
}

// Wait blocks until every actor and the logo have loaded or failed, or ctx
// ends, and then syncs.
func (r *Room) Wait(ctx context.Context) error {
	if err := r.boundary.Wait(ctx); err != nil {
		return err
	}
	if r.logo != nil {
		if _, err := r.logo.Wait(ctx); err != nil {
			return err
		}
	}
	r.Sync()
	return nil
}

// Tree is the room as it should be drawn now. Floor, walls and logo are
// always present.
func (r *Room) Tree() Tree {
	t := Tree{
		Camera:  r.cfg.Camera,
		Ambient: r.cfg.Ambient,
		Shadow:  r.cfg.Shadow.ToRGBA(),
	}
	for _, l := range r.cfg.Lights {
		t.Lights = append(t.Lights, Light{Position: l.Position, Intensity: l.Intensity})
	}

	t.Elements = append(t.Elements, boxElement(KindFloor, r.cfg.Floor))
	for _, w := range r.cfg.Walls {
		t.Elements = append(t.Elements, boxElement(KindWall, w))
	}
	t.Elements = append(t.Elements, r.logoElement())
	t.Elements = append(t.Elements, r.boundary.Elements(NewFallback(r.cfg.Fallback))...)
	return t
}

func boxElement(kind Kind, b config.BoxConfig) Element {
	e := Element{
		Kind:          kind,
		Name:          b.Name,
		Position:      b.Position,
		Size:          b.Size,
		Color:         b.Color.ToRGBA(),
		ReceiveShadow: b.ReceiveShadow,
	}
	if b.Edge != nil {
		edge := b.Edge.ToRGBA()
		e.Edge = &edge
	}
	return e
}

func (r *Room) logoElement() Element {
	e := Element{
		Kind:        KindLogo,
		Name:        "logo",
		Position:    r.cfg.Logo.Position,
		Size:        mgl64.Vec3{r.cfg.Logo.Width, r.cfg.Logo.Height, 0},
		Transparent: r.cfg.Logo.Transparent,
	}
	if r.logo != nil {
		if res := r.logo.Result(); res.State == assets.Ready && res.Asset.Texture != nil {
			e.Texture = res.Asset.Texture
		}
	}
	return e
}

// Close releases every asset the room holds.
func (r *Room) Close() {
	r.boundary.Release()
	if r.logo != nil {
		r.logo.Release()
	}
}
