package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepo records one row per operator mutation (scan, match, unmatch,
// status change, settlement action). The upstream owns the business data;
// this log exists so the team can answer "who did what" locally.
type AuditRepo struct {
	pool *pgxpool.Pool
}

type AuditEntry struct {
	ID        int64
	Action    string
	Operator  string
	TargetID  int64
	Detail    map[string]any
	CreatedAt time.Time
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Record(ctx context.Context, action, operator string, targetID int64, detail map[string]any) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(action) == "" || strings.TrimSpace(operator) == "" {
		return fmt.Errorf("invalid audit payload")
	}

	detailJSON, err := marshalDetail(detail)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO audit_log (action, operator, target_id, detail, created_at)
VALUES ($1, $2, $3, $4::jsonb, NOW())
`, action, operator, targetID, detailJSON)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, action, operator, target_id, detail, created_at
FROM audit_log
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry     AuditEntry
			rawDetail []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Operator, &entry.TargetID, &rawDetail, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Detail = decodeDetail(rawDetail)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM audit_log
WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", err)
	}

	return tag.RowsAffected(), nil
}

func marshalDetail(detail map[string]any) ([]byte, error) {
	if detail == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("encode audit detail: %w", err)
	}
	return raw, nil
}

func decodeDetail(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return detail
}
