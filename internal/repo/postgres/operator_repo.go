package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
)

var ErrOperatorNotFound = errors.New("operator not found")

type OperatorRepo struct {
	pool *pgxpool.Pool
}

func NewOperatorRepo(pool *pgxpool.Pool) *OperatorRepo {
	return &OperatorRepo{pool: pool}
}

func (r *OperatorRepo) FindByUsername(ctx context.Context, username string) (authsvc.OperatorRecord, error) {
	if r.pool == nil {
		return authsvc.OperatorRecord{}, fmt.Errorf("postgres pool is nil")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return authsvc.OperatorRecord{}, fmt.Errorf("invalid operator username")
	}

	var record authsvc.OperatorRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, role, active
FROM operators
WHERE username = $1
LIMIT 1
`, username).Scan(
		&record.ID,
		&record.Username,
		&record.PasswordHash,
		&record.Role,
		&record.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.OperatorRecord{}, ErrOperatorNotFound
		}
		return authsvc.OperatorRecord{}, fmt.Errorf("find operator by username: %w", err)
	}

	return record, nil
}
