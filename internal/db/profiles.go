package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonathan/vacancy-matching/internal/criteria"
	"github.com/jonathan/vacancy-matching/internal/types"
)

// profileSelect joins the aliases the criteria package renders against.
const profileSelect = `SELECT p.id, p.is_available_for_referral,
       COALESCE(pc.code, ''), COALESCE(ps.code, ''),
       ws.id, ws.code, ws.name_en, ws.name_fr, ws.sort_order,
       p.wfa_start_date, p.wfa_end_date,
       COALESCE(ARRAY(
           SELECT ci.code FROM profile_cities pci
           JOIN cities ci ON ci.id = pci.city_id
           WHERE pci.profile_id = p.id
           ORDER BY ci.code), '{}'),
       COALESCE(ARRAY(
           SELECT lrt.code FROM profile_language_referral_types plrt
           JOIN language_referral_types lrt ON lrt.id = plrt.language_referral_type_id
           WHERE plrt.profile_id = p.id
           ORDER BY lrt.code), '{}'),
       p.created_at, p.updated_at
FROM profiles p
LEFT JOIN classifications pc ON pc.id = p.classification_id
LEFT JOIN profile_statuses ps ON ps.id = p.profile_status_id
LEFT JOIN wfa_statuses ws ON ws.id = p.wfa_status_id`

// ProfileQuery renders the SQL and arguments that select the profiles matching where.
func ProfileQuery(where criteria.Conjunction) (string, []any) {
	args := &criteria.Args{}
	sql := profileSelect + "\nWHERE " + where.Where(args) + "\nORDER BY p.created_at, p.id"
	return sql, args.Values()
}

// FindProfiles returns every profile satisfying where, evaluated by the database.
func (db *DB) FindProfiles(ctx context.Context, where criteria.Conjunction) ([]types.Profile, error) {
	sql, args := ProfileQuery(where)
	rows, err := db.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		var (
			p          types.Profile
			wfaID      pgtype.UUID
			wfaCode    pgtype.Text
			wfaNameEn  pgtype.Text
			wfaNameFr  pgtype.Text
			wfaOrder   pgtype.Int4
			start, end pgtype.Date
		)
		if err := rows.Scan(
			&p.ID, &p.IsAvailableForReferral,
			&p.PreferredClassificationCode, &p.StatusCode,
			&wfaID, &wfaCode, &wfaNameEn, &wfaNameFr, &wfaOrder,
			&start, &end,
			&p.PreferredCityCodes, &p.PreferredLanguageCodes,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if wfaID.Valid {
			p.WFAStatus = &types.WFAStatus{
				CodeEntity: types.CodeEntity{
					ID:     uuid.UUID(wfaID.Bytes),
					Code:   wfaCode.String,
					NameEn: wfaNameEn.String,
					NameFr: wfaNameFr.String,
				},
				SortOrder: int(wfaOrder.Int32),
			}
		}
		p.WFAStartDate = datePtr(start)
		p.WFAEndDate = datePtr(end)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

func datePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := types.Date(d.Time)
	return &t
}
