package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/mindkey/fraud/infra/config"
	"github.com/mindkey/fraud/internal/engine/train"
	"github.com/mindkey/fraud/internal/storage"
	jsonstore "github.com/mindkey/fraud/internal/storage/file/json"
)

func main() {
	version := flag.Int64("version", 1, "snapshot version to write")
	flag.Parse()

	cfg := train.DefaultConfig()
	config.MustLoad("train", &cfg)

	snapshot, err := train.Train(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not train model")
	}

	store := jsonstore.NewBlobStorage(storage.SnapshotDir)
	if err := train.Save(store, *version, snapshot); err != nil {
		log.Fatal().Err(err).Int64("version", *version).Msg("could not save snapshot")
	}

	log.Info().
		Int64("version", *version).
		Float64("accuracy", snapshot.Report.Accuracy).
		Float64("precision", snapshot.Report.Precision).
		Float64("recall", snapshot.Report.Recall).
		Msg("saved model snapshot")
}
