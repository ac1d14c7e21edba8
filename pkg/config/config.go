// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	"github.com/caarlos0/env"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
)

type Config struct {
	ScoreWindows          []int   `env:"SCORE_WINDOWS"             envDefault:"100,200" envSeparator:"," envDocs:"ascending score windows tried by the matching engine"`
	FindAnchorMaxLoop     int     `env:"FIND_ANCHOR_MAX_LOOP"      envDefault:"0"                         envDocs:"number of anchors tried per window (0 means every candidate of the first role)"`
	MaxRoomsPerMatch      int     `env:"MAX_ROOMS_PER_MATCH"       envDefault:"0"                         envDocs:"max rooms formed by one match call (0 means unlimited)"`
	VerifyTimeoutMs       int     `env:"VERIFY_TIMEOUT_MS"         envDefault:"5000"                      envDocs:"client side timeout of the verification round trip in milliseconds"`
	VerifyRateLimitPerSec float64 `env:"VERIFY_RATE_LIMIT_PER_SEC" envDefault:"5"                         envDocs:"verification requests per second allowed per host"`
	VerifyRateBurst       int     `env:"VERIFY_RATE_BURST"         envDefault:"10"                        envDocs:"verification burst allowed per host"`
	TurnBaseSeconds       int     `env:"TURN_BASE_SECONDS"         envDefault:"60"                        envDocs:"base duration of a turn in seconds"`
	FirstTurnBonusSeconds int     `env:"FIRST_TURN_BONUS_SECONDS"  envDefault:"30"                        envDocs:"one time bonus added to the first turn of a session"`
	DropInBonusSeconds    int     `env:"DROP_IN_BONUS_SECONDS"     envDefault:"30"                        envDocs:"bonus added to the turn following a drop-in"`
	ScoreWinPoint         int     `env:"SCORE_WIN_POINT"           envDefault:"25"                        envDocs:"score credited per win when a session settles"`
	ScoreWinCap           int     `env:"SCORE_WIN_CAP"             envDefault:"0"                         envDocs:"max wins credited per session (0 means uncapped)"`
	ScoreLossPenalty      int     `env:"SCORE_LOSS_PENALTY"        envDefault:"15"                        envDocs:"penalty baseline subtracted from every settled session"`
	ScoreFloor            int     `env:"SCORE_FLOOR"               envDefault:"0"                         envDocs:"lowest total score an owner can reach"`
	PoolFetchLimit        int     `env:"POOL_FETCH_LIMIT"          envDefault:"100"                       envDocs:"max participants loaded into the fallback pool"`
	DatabaseDriver        string  `env:"DATABASE_DRIVER"           envDefault:"sqlite"                    envDocs:"storage backend: sqlite or postgres"`
	DatabaseDSN           string  `env:"DATABASE_DSN"              envDefault:"file:rankmatch.db"         envDocs:"storage connection string"`
	HTTPAddr              string  `env:"HTTP_ADDR"                 envDefault:":8080"                     envDocs:"listen address of the verification server"`
	ZipkinEndpoint        string  `env:"ZIPKIN_ENDPOINT"           envDefault:""                          envDocs:"zipkin collector url (empty disables trace export)"`
	LogLevel              string  `env:"LOG_LEVEL"                 envDefault:"info"                      envDocs:"logrus level"`
	LogFormat             string  `env:"LOG_FORMAT"                envDefault:"json"                      envDocs:"json or text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// VerifyTimeout returns the verification round trip timeout.
func (c *Config) VerifyTimeout() time.Duration {
	if c == nil || c.VerifyTimeoutMs <= 0 {
		return constants.VerifyTimeLimit
	}
	return time.Duration(c.VerifyTimeoutMs) * time.Millisecond
}
