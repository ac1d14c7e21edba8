// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/dropin"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/events"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker/rolematch"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/scoring"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/session"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/store"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/verification"
)

const (
	healthPath  = "/healthz"
	metricsPath = "/metrics"
)

// application holds the wired components of the serve command.
type application struct {
	store    store.Store
	bus      *gochannel.GoChannel
	sessions *session.Registry
	router   chi.Router
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	st, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	bus := events.NewInProcessBus(logrus.StandardLogger())
	committer := store.NewRoomCommitter(st, events.NewRoomPublisher(bus))
	builder := candidatepool.NewBuilder(st,
		candidatepool.WithPoolLimit(cfg.PoolFetchLimit),
		candidatepool.WithMetrics(m),
	)
	service := verification.NewService(st, builder, rolematch.New(cfg, m), committer, m)

	ledger := scoring.NewLedger(scoring.RoleScoreRule{
		WinPoint:    cfg.ScoreWinPoint,
		WinCap:      cfg.ScoreWinCap,
		LossPenalty: cfg.ScoreLossPenalty,
	}, scoring.Bounds{Floor: &cfg.ScoreFloor})
	sessions := session.NewRegistry(cfg, dropin.NewService(m, nil), session.WithLedger(ledger))

	router := verification.NewHandler(service, verification.NewHostRateLimiter(cfg.VerifyRateLimitPerSec, cfg.VerifyRateBurst))
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &application{
		store:    st,
		bus:      bus,
		sessions: sessions,
		router:   router,
	}, nil
}

// startRoomConsumer subscribes to committed rooms and opens a session for each one until ctx
// is done. The returned channel yields the consumer's exit error.
func (a *application) startRoomConsumer(ctx context.Context) (<-chan error, error) {
	messages, err := a.bus.Subscribe(ctx, constants.TopicRoomCommitted)
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		err := events.ProcessRoomCommitted(ctx, messages, a.openSession)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- err
	}()
	return done, nil
}

func (a *application) openSession(scope *envelope.Scope, event events.RoomCommitted) error {
	_, err := a.sessions.Open(scope, event.GameID, event.Mode, event.Room())
	return err
}

func (a *application) Close() error {
	return errors.Join(a.bus.Close(), a.store.Close())
}
