package main

import (
	"factorlab/cmd"
	"factorlab/internal/config"
	"factorlab/internal/logger"
	"os"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.LoadSecrets()
	if err != nil {
		log.Fatal(err)
	}

	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	log.Infow("starting api", "port", cfg.Port, "commit", os.Getenv("commit_hash"))
	err = deps.ApiHandler.StartApi(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
}
