package services

import (
	"context"

	"github.com/pvn-digital/initiative-catalog/models"
)

// The repositories in package database satisfy these.

type InitiativeStore interface {
	FindAll(ctx context.Context) ([]models.Initiative, error)
	Add(ctx context.Context, initiative *models.Initiative) error
	FindByOfficialName(ctx context.Context, officialName string) (models.Initiative, error)
	UpdateByOfficialName(ctx context.Context, officialName, owner string, initiative models.Initiative) (int64, error)
	AddLinks(ctx context.Context, officialName string, links []string) (int64, error)
	DeleteByOfficialName(ctx context.Context, officialName, owner string) (int64, error)
}

type DatabaseCatalog interface {
	Names(ctx context.Context) ([]string, error)
	FindByNames(ctx context.Context, names []string) ([]models.ExternalDatabase, error)
}

type LogStore interface {
	Add(ctx context.Context, entry *models.LogEntry) error
	FindRecent(ctx context.Context, limit int) ([]models.LogEntry, error)
}

type AdminStore interface {
	FindAll(ctx context.Context) ([]models.Admin, error)
	Add(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, email string) (int64, error)
	Exists(ctx context.Context, email string) (bool, error)
}
