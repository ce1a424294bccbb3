package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsenako/console-service/internal/domain"
)

// SettingsRepository stores per-console settings documents. The scope
// key is "platform" for the platform console or "shop:<id>" for a
// merchant console.
type SettingsRepository interface {
	Get(ctx context.Context, scopeKey string, section domain.SettingsSection) (domain.SettingsDocument, error)
	Upsert(ctx context.Context, scopeKey string, section domain.SettingsSection, doc domain.SettingsDocument) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context, scopeKey string, section domain.SettingsSection) (domain.SettingsDocument, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx,
		`SELECT document FROM settings_documents WHERE scope=$1 AND section=$2`,
		scopeKey, section,
	).Scan(&raw); err != nil {
		return nil, err
	}
	var doc domain.SettingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return doc, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, scopeKey string, section domain.SettingsSection, doc domain.SettingsDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
        INSERT INTO settings_documents (scope, section, document, updated_at)
        VALUES ($1,$2,$3,NOW())
        ON CONFLICT (scope, section) DO UPDATE SET document=EXCLUDED.document, updated_at=NOW()`,
		scopeKey, section, raw)
	return err
}
