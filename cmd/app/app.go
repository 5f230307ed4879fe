package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"barvid/internal/api"
	"barvid/internal/config"
	"barvid/internal/logger"
	"barvid/internal/repository"
	"barvid/internal/repository/docstore"
	"barvid/internal/service"
	"barvid/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	if err = docstore.EnsureDir(conf.Store.DataDir); err != nil {
		return fmt.Errorf("failed to initialize data dir -> %w", err)
	}

	media, err := storage.NewMediaStore(conf.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize media store -> %w", err)
	}

	// First run seeds the default admin account.
	users := repository.NewUserRepository(conf.Store.DataDir)
	if err = service.NewAuthService(users).Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("failed to bootstrap users -> %w", err)
	}

	s := api.NewServer(conf, media)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
