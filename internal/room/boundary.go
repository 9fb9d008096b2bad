package room

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Boundary shows nothing while any of its actors is waiting. Once all of
// them have settled each is shown as itself or as its placeholder, so a
// failed actor never hides its siblings.
type Boundary struct {
	actors []*Actor
}

func NewBoundary(actors ...*Actor) *Boundary {
	return &Boundary{actors: actors}
}

func (b *Boundary) Actors() []*Actor {
	return b.actors
}

// Sync advances every actor and reports whether all have settled.
func (b *Boundary) Sync() bool {
	settled := true
	for _, a := range b.actors {
		if a.Sync() == PhaseWaiting {
			settled = false
		}
	}
	return settled
}

func (b *Boundary) Settled() bool {
	for _, a := range b.actors {
		if a.Phase() == PhaseWaiting {
			return false
		}
	}
	return true
}

// Elements is what the boundary renders: nothing until settled.
func (b *Boundary) Elements(fallback Fallback) []Element {
	if !b.Settled() {
		return nil
	}
	out := make([]Element, 0, len(b.actors))
	for _, a := range b.actors {
		if a.Phase() == PhaseShown {
			out = append(out, Element{
				Kind:     KindActor,
				Name:     a.Config.Name,
				Position: a.Config.Position,
				Scale:    a.Config.Scale,
				Scene:    a.Scene(),
			})
			continue
		}
		out = append(out, fallback.Element(a.Config.Name, a.Config.Position, a.Err()))
	}
	return out
}

// Wait blocks until every actor has settled or ctx ends.
func (b *Boundary) Wait(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range b.actors {
		g.Go(func() error {
			return a.Wait(ctx)
		})
	}
	return g.Wait()
}

// Release lets go of every actor's model.
func (b *Boundary) Release() {
	for _, a := range b.actors {
		a.Release()
	}
}
