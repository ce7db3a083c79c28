package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/pkg/log"
)

type ManualsRepo struct {
	db *sql.DB
}

func NewManualsRepo(db *sql.DB) *ManualsRepo {
	return &ManualsRepo{db: db}
}

func (r *ManualsRepo) ListManuals(ctx context.Context) ([]core.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT equipment_id, equipment_name FROM manuals ORDER BY equipment_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query manuals: %w", err)
	}
	defer rows.Close()

	var manuals []core.Equipment
	for rows.Next() {
		var eq core.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name); err != nil {
			return nil, fmt.Errorf("failed to scan manual: %w", err)
		}
		manuals = append(manuals, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(manuals)).Msg("loaded manual list")
	return manuals, nil
}

func (r *ManualsRepo) GetManual(ctx context.Context, equipmentID int64) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx,
		`SELECT manual_content FROM manuals WHERE equipment_id = ?`, equipmentID,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &core.NotFoundError{EquipmentID: equipmentID}
	}
	if err != nil {
		return "", fmt.Errorf("failed to load manual %d: %w", equipmentID, err)
	}
	return content, nil
}

func (r *ManualsRepo) FindByName(ctx context.Context, name string) (core.Equipment, error) {
	var eq core.Equipment
	err := r.db.QueryRowContext(ctx,
		`SELECT equipment_id, equipment_name FROM manuals WHERE equipment_name = ? COLLATE NOCASE`,
		strings.TrimSpace(name),
	).Scan(&eq.ID, &eq.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Equipment{}, &core.NotFoundError{Name: name}
	}
	if err != nil {
		return core.Equipment{}, fmt.Errorf("failed to find manual %q: %w", name, err)
	}
	return eq, nil
}

// AddManual stores a new manual. Names are unique; an existing name yields
// core.ErrDuplicateManual and leaves the stored text untouched.
func (r *ManualsRepo) AddManual(ctx context.Context, name, content string) (core.Equipment, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO manuals (equipment_name, manual_content) VALUES (?, ?)`,
		name, content,
	)
	if err != nil {
		return core.Equipment{}, fmt.Errorf("failed to insert manual: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return core.Equipment{}, err
	}
	if affected == 0 {
		return core.Equipment{}, fmt.Errorf("%w: %q", core.ErrDuplicateManual, name)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Equipment{}, err
	}

	log.FromCtx(ctx).Info().Int64("equipment_id", id).Str("equipment", name).Int("chars", len(content)).Msg("manual stored")
	return core.Equipment{ID: id, Name: name}, nil
}
