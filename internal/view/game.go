// Package view shows the room in an ebiten window.
package view

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/smasonuk/sieroom"
	"github.com/smasonuk/sieroom/internal/config"
	"github.com/smasonuk/sieroom/internal/render"
	"github.com/smasonuk/sieroom/internal/room"
	"github.com/smasonuk/sieroom/pkg/logger"
)

var (
	log = logger.For("view")

	_ sieroom.PolygonBatcher = (*Batcher)(nil)
)

// Game rebuilds the world whenever the room changes and keeps the user's
// camera across rebuilds.
type Game struct {
	room     *room.Room
	window   config.WindowConfig
	world    *sieroom.World
	camera   *sieroom.Camera
	controls Controls
	batcher  *Batcher
	ShowFPS  bool
}

func NewGame(r *room.Room, window config.WindowConfig) *Game {
	return &Game{
		room:    r,
		window:  window,
		batcher: NewBatcher(),
	}
}

func (g *Game) Update() error {
	if g.room.Sync() || g.world == nil {
		g.rebuild()
	}
	g.controls.Update(g.camera, ReadInput())
	return nil
}

func (g *Game) rebuild() {
	w := render.Build(g.room.Tree())
	if g.camera == nil {
		g.camera = w.Camera()
	} else {
		w.SetCamera(g.camera)
	}
	g.world = w

	log.WithFields(logrus.Fields{
		"version": g.room.Version(),
		"settled": g.room.Settled(),
		"models":  len(w.Objects()),
	}).Debug("world rebuilt")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.window.Background.ToRGBA())
	if g.world == nil {
		return
	}
	g.batcher.Begin(screen)
	g.world.PaintObjects(g.batcher, g.window.Width, g.window.Height)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	}
}

// Layout keeps a fixed logical size. ebiten scales and centres it in the
// window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.window.Width, g.window.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.window.Width, g.window.Height)
	ebiten.SetWindowTitle(g.window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
