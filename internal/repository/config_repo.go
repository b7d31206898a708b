package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"anti_bark/internal/models"
)

// ErrCorruptConfig is returned when a stored record cannot represent valid bounds.
var ErrCorruptConfig = errors.New("corrupt device config record")

type ConfigSQLite struct {
	db *sql.DB
}

func NewConfigSQLite(db *sql.DB) *ConfigSQLite {
	return &ConfigSQLite{db: db}
}

const (
	upsertConfigSQL = `
		INSERT INTO device_config (schema_id, version, lowest_khz, highest_khz, interval_s, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(schema_id) DO UPDATE SET
			version=excluded.version,
			lowest_khz=excluded.lowest_khz,
			highest_khz=excluded.highest_khz,
			interval_s=excluded.interval_s,
			updated_at=excluded.updated_at
	`

	selectConfigSQL = `
		SELECT version, lowest_khz, highest_khz, interval_s
		FROM device_config WHERE schema_id=?
	`
)

// Save writes all three values in one statement.
func (r *ConfigSQLite) Save(ctx context.Context, schema string, version int, b models.Bounds) error {
	_, err := r.db.ExecContext(ctx, upsertConfigSQL,
		schema,
		version,
		int64(b.LowestKHz),
		int64(b.HighestKHz),
		int64(b.IntervalSeconds),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save config %q v%d: %w", schema, version, err)
	}
	return nil
}

// Load returns nil when no record exists or the stored version differs.
func (r *ConfigSQLite) Load(ctx context.Context, schema string, version int) (*models.Bounds, error) {
	var (
		storedVersion              int
		lowest, highest, intervalS int64
	)
	err := r.db.QueryRowContext(ctx, selectConfigSQL, schema).Scan(&storedVersion, &lowest, &highest, &intervalS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load config %q: %w", schema, err)
	}
	if storedVersion != version {
		return nil, nil
	}

	for _, v := range []int64{lowest, highest, intervalS} {
		if v < 0 || v > math.MaxUint32 {
			return nil, fmt.Errorf("load config %q: value %d: %w", schema, v, ErrCorruptConfig)
		}
	}
	return &models.Bounds{
		LowestKHz:       uint32(lowest),
		HighestKHz:      uint32(highest),
		IntervalSeconds: uint32(intervalS),
	}, nil
}
