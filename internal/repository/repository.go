package repository

import (
	"context"
	"database/sql"
	"time"

	"anti_bark/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ConfigRepo stores the device bounds record under a schema identifier and version.
type ConfigRepo interface {
	Load(ctx context.Context, schema string, version int) (*models.Bounds, error)
	Save(ctx context.Context, schema string, version int, b models.Bounds) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error)
}

type Repository struct {
	ConfigRepo ConfigRepo
	EventRepo  EventRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ConfigRepo: NewConfigSQLite(db),
		EventRepo:  NewEventSQLite(db),
		Auth:       NewOperatorRepository(db),
	}
}
