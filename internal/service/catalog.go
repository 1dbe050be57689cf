package service

import (
	"context"
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fmt"
	"log/slog"
)

type CatalogService struct {
	log         *slog.Logger
	catalogRepo CatalogProvider
}

type CatalogProvider interface {
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	ListConstructors(ctx context.Context) ([]models.Constructor, error)
}

func NewCatalogService(log *slog.Logger, catalogRepo CatalogProvider) *CatalogService {
	return &CatalogService{
		log:         log,
		catalogRepo: catalogRepo,
	}
}

func (s *CatalogService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	const op = "service.catalog.ListDrivers"

	drivers, err := s.catalogRepo.ListDrivers(ctx)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to list drivers", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return drivers, nil
}

func (s *CatalogService) ListConstructors(ctx context.Context) ([]models.Constructor, error) {
	const op = "service.catalog.ListConstructors"

	constructors, err := s.catalogRepo.ListConstructors(ctx)
	if err != nil {
		s.log.With(slog.String("op", op)).Error("failed to list constructors", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return constructors, nil
}
