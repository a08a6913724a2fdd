package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof" // Import for side-effects (registers handlers)
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lowwcrystal/go-mmo-client/game"
	"github.com/lowwcrystal/go-mmo-client/render"
	"github.com/lowwcrystal/go-mmo-client/session"
)

var (
	serverURL      = flag.String("server", "ws://localhost:8080/ws", "game server websocket URL")
	username       = flag.String("name", "Wanderer", "display name sent with the join request")
	backgroundPath = flag.String("background", "assets/world.png", "world background image")
	logFile        = flag.String("log", "client.log", "log file path")
	debugAddr      = flag.String("debug", ":6060", "metrics/pprof http service address")
	companionN     = flag.Int("companions", 2, "number of follower companions to spawn")
	maxReconnects  = flag.Int("max-reconnects", 5, "reconnect attempts before giving up")
	reconnectBase  = flag.Duration("reconnect-delay", time.Second, "base reconnect delay (scaled by attempt count)")
)

var companionNames = []string{"Biscuit", "Clover", "Pepper", "Maple", "Juniper"}

func main() {
	flag.Parse()

	log := newLogger(*logFile)
	defer log.Sync()
	log.Infow("starting client", "server", *serverURL, "name", *username)

	// Metrics and pprof sidecar.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Infow("debug http server listening", "addr", *debugAddr)
		if err := http.ListenAndServe(*debugAddr, nil); err != nil {
			log.Warnw("debug http server stopped", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Info("interrupt received, shutting down")
		cancel()
	}()

	store := game.NewStore()
	sim := game.NewCompanionSim(store, nil, log)
	frames := render.NewFrames(log)
	pipeline := render.NewPipeline(store, frames, loadBackground(*backgroundPath, log), log)

	sess := session.New(session.Config{
		URL:           *serverURL,
		Username:      *username,
		MaxReconnects: *maxReconnects,
		BaseDelay:     *reconnectBase,
	}, log)
	go sess.Run(ctx)

	var specs []game.CompanionSpec
	for i := 0; i < *companionN; i++ {
		specs = append(specs, game.CompanionSpec{
			Name:           companionNames[i%len(companionNames)],
			FollowDistance: 60 + 25*float64(i),
		})
	}

	app := NewApp(store, sess, sim, pipeline, specs, log)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("World Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil && err != ebiten.Termination {
		log.Fatalw("game loop error", "error", err)
	}
	cancel()
	log.Info("client finished")
}
