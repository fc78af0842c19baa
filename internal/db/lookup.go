package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// FindByCode resolves code in a reference table. It returns nil if the code does not exist.
func (db *DB) FindByCode(ctx context.Context, table lookup.Table, code string) (*types.CodeEntity, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}

	var e types.CodeEntity
	// table is whitelisted above and cannot carry user input
	err := db.q.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, code, COALESCE(name_en, ''), COALESCE(name_fr, '') FROM %s WHERE code = $1`, table),
		code,
	).Scan(&e.ID, &e.Code, &e.NameEn, &e.NameFr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s code %q: %w", table, code, err)
	}
	return &e, nil
}

// ListCodes returns every entity of a reference table ordered by code.
func (db *DB) ListCodes(ctx context.Context, table lookup.Table) ([]types.CodeEntity, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("unknown lookup table %q", table)
	}

	rows, err := db.q.Query(ctx,
		fmt.Sprintf(`SELECT id, code, COALESCE(name_en, ''), COALESCE(name_fr, '') FROM %s ORDER BY code`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var out []types.CodeEntity
	for rows.Next() {
		var e types.CodeEntity
		if err := rows.Scan(&e.ID, &e.Code, &e.NameEn, &e.NameFr); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
