// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker/rolematch"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/store"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/verification"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		ScoreWindows:          []int{100, 200},
		VerifyTimeoutMs:       2000,
		VerifyRateLimitPerSec: 50,
		VerifyRateBurst:       50,
		TurnBaseSeconds:       60,
		FirstTurnBonusSeconds: 30,
		DropInBonusSeconds:    30,
		PoolFetchLimit:        100,
		ScoreWinPoint:         25,
		ScoreLossPenalty:      15,
		DatabaseDriver:        "sqlite",
		DatabaseDSN:           filepath.Join(t.TempDir(), "rankmatch.db"),
	}
}

func seedGame(t *testing.T, ctx context.Context, st store.Store) {
	t.Helper()
	require.NoError(t, st.SaveRoleConfig(ctx, "game-1", store.RoleConfig{Roles: []models.RoleRequirement{
		{Name: "tank", SlotCount: 1},
		{Name: "dealer", SlotCount: 2},
	}}))
	queue := testsetup.Candidates(
		testsetup.CandidateSpec{Role: "tank", HeroID: "h1", Score: 1200},
		testsetup.CandidateSpec{Role: "dealer", HeroID: "h2", Score: 1190},
		testsetup.CandidateSpec{Role: "dealer", HeroID: "h3", Score: 1230},
	)
	for _, candidate := range queue {
		require.NoError(t, st.Enqueue(ctx, store.QueueEntry{
			ID:       candidate.ID,
			GameID:   "game-1",
			Mode:     constants.ModeRank,
			OwnerID:  candidate.OwnerID,
			HeroID:   candidate.HeroID,
			HeroName: "hero " + candidate.HeroID,
			Role:     candidate.Role,
			Score:    candidate.Score,
			JoinedAt: candidate.JoinedAt,
		}))
	}
}

func TestApplication_VerifiesAndOpensSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := testConfig(t)
	app, err := newApplication(ctx, cfg)
	require.NoError(t, err)
	defer app.Close()

	consumerDone, err := app.startRoomConsumer(ctx)
	require.NoError(t, err)

	seedGame(t, ctx, app.store)
	server := httptest.NewServer(app.router)
	defer server.Close()

	resolution, err := app.store.LoadRoleConfig(ctx, "game-1")
	require.NoError(t, err)

	protocol := verification.NewProtocol(cfg, candidatepool.NewBuilder(app.store), rolematch.New(cfg, nil),
		verification.NewClient(server.URL, server.Client()), nil)
	run, err := protocol.RunUntilVerified(testsetup.NewTestScope(), verification.RunRequest{
		GameID:   "game-1",
		Mode:     constants.ModeRank,
		Host:     "owner-h1",
		Realtime: true,
		Roles:    resolution.Roles,
	}, 2)
	require.NoError(t, err)
	require.True(t, run.Outcome.Verified, "outcome %s reason %s", run.Outcome.Outcome, run.Outcome.Reason)
	roomID := run.Outcome.Room.ID
	require.NotEmpty(t, roomID)

	queue, err := app.store.ListQueue(ctx, "game-1", constants.ModeRank)
	require.NoError(t, err)
	assert.Empty(t, queue, "matched entries leave the waiting queue")

	var sessionID string
	require.Eventually(t, func() bool {
		sessionID, err = app.sessions.FindByRoom(roomID)
		return err == nil
	}, 3*time.Second, 10*time.Millisecond)
	entries, err := app.sessions.Entries(sessionID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, "hero "+entry.HeroID, entry.HeroName)
	}

	cancel()
	select {
	case err := <-consumerDone:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("room consumer did not stop")
	}
}

func TestApplication_HealthAndMetrics(t *testing.T) {
	app, err := newApplication(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	server := httptest.NewServer(app.router)
	defer server.Close()

	resp, err := server.Client().Get(server.URL + healthPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = server.Client().Get(server.URL + metricsPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNewApplication_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := newApplication(context.Background(), cfg)
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, migrate(context.Background(), cfg))
	// applying twice is a no-op
	require.NoError(t, migrate(context.Background(), cfg))
}

func TestConfigureLogger(t *testing.T) {
	logger := logrus.New()

	require.NoError(t, configureLogger(logger, "debug", "text"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	require.NoError(t, configureLogger(logger, "warn", ""))
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	assert.Error(t, configureLogger(logger, "loud", "json"))
	assert.Error(t, configureLogger(logger, "info", "xml"))
}

func TestSetupTracing(t *testing.T) {
	shutdown, err := setupTracing("")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
