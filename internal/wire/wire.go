package wire

import (
	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/internal/usecase"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)

	return &App{
		Service: service,
	}
}
