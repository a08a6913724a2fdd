package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/lowwcrystal/go-mmo-client/game"
	"github.com/lowwcrystal/go-mmo-client/render"
	"github.com/lowwcrystal/go-mmo-client/session"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

// App is the ebiten game: it drains server events into the store, dispatches
// input, ticks the companion simulator, and follows the local player with the
// camera. All store mutation happens on this goroutine.
type App struct {
	store      *game.Store
	sess       *session.Session
	sim        *game.CompanionSim
	pipeline   *render.Pipeline
	vp         game.Viewport
	companions []game.CompanionSpec
	log        *zap.SugaredLogger
}

// NewApp wires the client explicitly; there are no package-level singletons.
func NewApp(store *game.Store, sess *session.Session, sim *game.CompanionSim,
	pipeline *render.Pipeline, companions []game.CompanionSpec, log *zap.SugaredLogger) *App {
	return &App{
		store:      store,
		sess:       sess,
		sim:        sim,
		pipeline:   pipeline,
		vp:         game.NewViewport(screenWidth, screenHeight),
		companions: companions,
		log:        log,
	}
}

// Update runs once per frame.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.drainEvents()
	a.dispatchInput()

	a.sim.EnsureSpawned(a.companions)
	a.sim.Tick()

	if lp, ok := a.store.LocalPlayer(); ok {
		a.vp.Recenter(lp.X, lp.Y)
	}
	return nil
}

// drainEvents applies every queued server event to the store. Applying here
// keeps mutation single-threaded with the simulator and renderer.
func (a *App) drainEvents() {
	for {
		select {
		case ev := <-a.sess.Events():
			session.Apply(a.store, ev, a.log)
		default:
			return
		}
	}
}

func (a *App) dispatchInput() {
	if a.sess.State() != session.StateConnected {
		return
	}
	moves, stop := pollInput(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased)
	for _, dir := range moves {
		a.sess.SendMove(dir)
	}
	if stop {
		a.sess.SendStop()
	}
}

// Draw renders the frame from the store.
func (a *App) Draw(screen *ebiten.Image) {
	a.pipeline.Draw(screen, a.vp, a.sess.State().String())
}

// Layout fixes the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
