package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/Hemachand25/FreshGrocery/configs"
	"github.com/Hemachand25/FreshGrocery/middlewares"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/pkg/logger"
	"github.com/Hemachand25/FreshGrocery/pkg/shutdown"
	"github.com/Hemachand25/FreshGrocery/routes"
	"github.com/Hemachand25/FreshGrocery/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := configs.LoadConfig()
	log := logger.New(logger.Options{
		Service: "freshgrocery",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *configs.Config, log *slog.Logger) error {
	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return err
	}
	if err := configs.SeedAdmin(db, cfg, log); err != nil {
		return err
	}
	if err := configs.SeedCategories(db, log); err != nil {
		return err
	}

	hub := ws.NewHub(log, cfg.SubscriberBuffer)

	// HTTP
	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log), middlewares.CORSMiddleware(cfg.CORSOrigins))

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB: db, Config: cfg, Hub: hub, Clock: clock.NewSystem(), Log: log,
	}); err != nil {
		return err
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server running", slog.String("addr", srv.Addr), slog.String("policy", cfg.TransitionPolicy))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		sctx, scancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer scancel()

		// close streams first so hijacked websocket and SSE handlers return
		herr := hub.Shutdown(sctx)
		serr := srv.Shutdown(sctx)
		return errors.Join(serr, herr)
	})
	return g.Wait()
}
