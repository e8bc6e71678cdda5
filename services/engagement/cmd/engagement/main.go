package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/studyshare/internal/platform/auth"
	"github.com/example/studyshare/internal/platform/cache"
	"github.com/example/studyshare/internal/platform/config"
	"github.com/example/studyshare/internal/platform/db"
	"github.com/example/studyshare/internal/platform/events"
	"github.com/example/studyshare/internal/platform/httpserver"
	"github.com/example/studyshare/internal/platform/logging"
	"github.com/example/studyshare/internal/platform/natsconn"
	"github.com/example/studyshare/internal/platform/run"
	"github.com/example/studyshare/services/engagement/internal/handlers"
	"github.com/example/studyshare/services/engagement/internal/service"
	"github.com/example/studyshare/services/engagement/internal/store"
	"github.com/example/studyshare/services/engagement/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	run.Exit(run.WithSignals(log, func(ctx context.Context) error {
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		var summaryCache *cache.Cache
		if cfg.Redis.URL != "" {
			summaryCache, err = cache.New(cfg.Redis.URL, cfg.Redis.CacheTTL)
			if err != nil {
				return err
			}
			defer summaryCache.Close()
		}

		var js nats.JetStreamContext
		if cfg.NATS.URL != "" {
			nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATS.URL, Name: cfg.ServiceName})
			if err != nil {
				return err
			}
			defer nc.Drain()
			js, err = nc.JetStream()
			if err != nil {
				return err
			}
		}

		publisher := events.New(js, log)
		if err := publisher.EnsureStream(); err != nil {
			return err
		}

		ratingStore := store.NewPostgresRatingStore(pool)
		likeStore := store.NewPostgresLikeStore(pool)
		commentStore := store.NewPostgresCommentStore(pool)

		ratings := service.NewRatings(ratingStore, summaryCache, publisher, log)
		likes := service.NewLikes(likeStore, publisher, log)
		comments := service.NewComments(commentStore, publisher, log)

		verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

		r := chi.NewRouter()
		httpserver.SetupRouter(r)
		r.Route("/v1", func(r chi.Router) {
			// Public reads. OptionalUser lets an authenticated caller
			// see their own like flag.
			r.Group(func(r chi.Router) {
				r.Use(auth.OptionalUser(verifier))
				r.Get("/resources/{resource_id}/rating-summary", handlers.GetRatingSummary(ratings))
				r.Get("/resources/{resource_id}/like", handlers.GetLikeStatus(likes))
				r.Get("/resources/{resource_id}/comments", handlers.ListComments(comments))
			})

			// Authenticated writes.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireUser(verifier))
				r.Post("/resources/{resource_id}/rate", handlers.SubmitRating(ratings))
				r.Get("/resources/{resource_id}/rate", handlers.GetMyRating(ratings))
				r.Delete("/resources/{resource_id}/rate", handlers.DeleteRating(ratings))
				r.Post("/resources/{resource_id}/like", handlers.ToggleLike(likes))
				r.Post("/resources/{resource_id}/comments", handlers.CreateComment(comments))
				r.Delete("/comments/{comment_id}", handlers.DeleteComment(comments))
			})
		})

		srv := httpserver.New(httpserver.Options{
			Addr:        cfg.HTTP.Addr,
			ServiceName: cfg.ServiceName,
			Logger:      log,
			Router:      r,
		})

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Run(ctx) })
		g.Go(func() error {
			sweeper := worker.NewSweeper(ratingStore, cfg.SweepInterval, log)
			return sweeper.Run(ctx)
		})
		if js != nil {
			g.Go(func() error {
				reconciler := worker.NewStatsReconciler(js, ratingStore, log)
				return reconciler.Run(ctx)
			})
		}

		log.Info("engagement service started", zap.String("addr", cfg.HTTP.Addr))
		return g.Wait()
	}))
}
