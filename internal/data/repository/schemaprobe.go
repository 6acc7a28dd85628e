package repository

import (
	"context"
	"fmt"
	"sync"

	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

// SchemaProbe answers "does column C exist on table T" with a process-wide
// memo. It exists to tolerate partially-migrated user tables (legacy
// deployments carry a plaintext-era `password` column instead of
// `password_hash`); it is a compatibility shim, not an optimization, and
// can be dropped once every deployment runs the versioned schema.
//
// Entries are written at most once per key and never invalidated; the
// schema is assumed stable for the process lifetime. A racing first write
// is harmless because both writers compute the same value.
type SchemaProbe struct {
	db    database.Querier
	log   *zap.Logger
	mu    sync.RWMutex
	cache map[string]bool
}

func NewSchemaProbe(db database.Querier, log *zap.Logger) *SchemaProbe {
	return &SchemaProbe{
		db:    db,
		log:   log.With(zap.String("repository", "schema_probe")),
		cache: make(map[string]bool),
	}
}

// HasColumn reports whether the column exists, querying metadata only on
// the first call for each (table, column) pair.
func (p *SchemaProbe) HasColumn(ctx context.Context, table, column string) (bool, error) {
	key := table + "::" + column

	p.mu.RLock()
	exists, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return exists, nil
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		)
	`

	if err := p.db.QueryRow(ctx, query, table, column).Scan(&exists); err != nil {
		p.log.Error("Failed to probe column",
			zap.Error(err),
			zap.String("table", table),
			zap.String("column", column),
		)
		return false, fmt.Errorf("probe column %s.%s: %w", table, column, err)
	}

	p.mu.Lock()
	p.cache[key] = exists
	p.mu.Unlock()

	return exists, nil
}
