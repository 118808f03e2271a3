package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/mindkey/fraud/client/history"
	"github.com/mindkey/fraud/infra/config"
	"github.com/mindkey/fraud/internal/engine"
	"github.com/mindkey/fraud/internal/engine/train"
	"github.com/mindkey/fraud/internal/metrics"
	"github.com/mindkey/fraud/internal/model"
	"github.com/mindkey/fraud/internal/server"
	"github.com/mindkey/fraud/internal/storage"
	jsonstore "github.com/mindkey/fraud/internal/storage/file/json"
	"github.com/mindkey/fraud/user"
	"github.com/mindkey/fraud/user/telegram"
)

const name = "riskd"

type engineConfig struct {
	Port            int    `json:"port"`
	SnapshotVersion int64  `json:"snapshot_version"`
	MirrorURL       string `json:"mirror_url"`
	TelegramAlerts  bool   `json:"telegram_alerts"`
	Debug           bool   `json:"debug"`
}

// scoreRequest carries a transaction with either an inline history or
// an account id to resolve through the history source.
type scoreRequest struct {
	Transaction model.Transaction  `json:"transaction"`
	UserHistory *model.UserHistory `json:"user_history,omitempty"`
	Account     string             `json:"account,omitempty"`
}

func main() {
	cfg := engineConfig{}
	config.MustLoad("engine", &cfg)

	// a missing or corrupt snapshot must keep the process out of serving state
	store := jsonstore.NewBlobStorage(storage.SnapshotDir)
	snapshot, err := train.Load(store, cfg.SnapshotVersion)
	if err != nil {
		log.Fatal().Err(err).Int64("version", cfg.SnapshotVersion).Msg("could not load model snapshot")
	}
	params, ensemble, err := snapshot.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("could not reconstitute model artifacts")
	}
	detector, err := engine.NewDetector(params, ensemble)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create detector")
	}
	log.Info().
		Int64("version", cfg.SnapshotVersion).
		Float64("accuracy", snapshot.Report.Accuracy).
		Msg("loaded model snapshot")

	var source history.Source
	if cfg.MirrorURL != "" {
		source = history.NewMirror(cfg.MirrorURL)
	}

	var alerts user.Interface = user.NewVoid()
	if cfg.TelegramAlerts {
		bot, err := telegram.NewBot()
		if err != nil {
			log.Fatal().Err(err).Msg("could not create telegram bot")
		}
		alerts = bot
	}

	registry := jsonstore.NewEventRegistry(name)

	metrics.Register()
	http.Handle("/metrics", promhttp.Handler())

	srv := server.NewServer(name, cfg.Port).
		Add(server.Live()).
		AddRoute(server.POST, server.Api, "score", score(cfg, detector, source, registry, alerts))
	if cfg.Debug {
		srv.Debug()
	}
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func score(cfg engineConfig, detector *engine.Detector, source history.Source, registry storage.Registry, alerts user.Interface) server.Handler {
	return func(r *http.Request) ([]byte, int, error) {
		request := scoreRequest{}
		if err := server.JsonRead(r, cfg.Debug, &request); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("could not parse request: %w", err)
		}

		userHistory := request.UserHistory
		if userHistory == nil && request.Account != "" && source != nil {
			h, err := source.Get(r.Context(), request.Account)
			if err != nil {
				// history is optional, score the transaction cold
				log.Warn().Err(err).Str("account", request.Account).Msg("could not retrieve history")
			} else {
				userHistory = h
			}
		}

		result, err := detector.Predict(request.Transaction, userHistory)
		if err != nil {
			if errors.Is(err, model.ValidationErr) {
				return nil, http.StatusBadRequest, err
			}
			if errors.Is(err, model.ContractErr) {
				// deployment integrity fault, do not keep serving degraded scores
				log.Fatal().Err(err).Msg("model contract mismatch")
			}
			return nil, http.StatusInternalServerError, err
		}

		if err := registry.Put(storage.Key{
			Hash:  result.Timestamp.Truncate(24 * time.Hour).Unix(),
			Name:  name,
			Label: string(result.Decision),
		}, result); err != nil {
			log.Error().Err(err).Str("id", result.ID).Msg("could not register score")
		}

		if result.Decision == model.Block {
			if err := alerts.Send(user.BlockAlert(result, request.Transaction)); err != nil {
				log.Error().Err(err).Str("id", result.ID).Msg("could not send alert")
			}
		}

		b, err := json.Marshal(result)
		if err != nil {
			return nil, http.StatusInternalServerError, fmt.Errorf("could not encode result: %w", err)
		}
		return b, http.StatusOK, nil
	}
}
