package usecase

import (
	"github.com/michelledlee/iRate-Database/internal/data/repository"
	"github.com/michelledlee/iRate-Database/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ingest IngestService
	Report ReportService
	Admin  AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Ingest: NewIngestService(repo, log),
		Report: NewReportService(repo, log),
		Admin:  NewAdminService(repo, log),
	}
}
