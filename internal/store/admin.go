package store

import (
	"context"
	"fmt"

	"github.com/akademia/backoffice-manager/internal/dependency"
	"github.com/akademia/backoffice-manager/internal/entity"
)

type adminStore struct {
	*MYSQLStore
}

// Admin returns an object implementing dependency.Admin interface
func (ms *MYSQLStore) Admin() dependency.Admin {
	return &adminStore{
		MYSQLStore: ms,
	}
}

// GetAdminByUsername returns admin by username
func (as *adminStore) GetAdminByUsername(ctx context.Context, un string) (*entity.Admin, error) {
	row := as.db.QueryRowxContext(ctx, `
		SELECT
		id,
		username,
		password_hash,
		created_at
		FROM admin WHERE username = ?`, un)
	if row.Err() != nil {
		return nil, fmt.Errorf("not found %v", row.Err().Error())
	}

	var admin entity.Admin
	err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin")
	}
	return &admin, nil
}

// ChangePassword changes the password of an admin
func (as *adminStore) ChangePassword(ctx context.Context, un, newHash string) error {
	return as.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		res, err := as.db.ExecContext(ctx, `
			UPDATE admin
			SET password_hash = ?
			WHERE username = ?`, newHash, un)
		if err != nil {
			return fmt.Errorf("failed change admin user password")
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows")
		}
		if ra == 0 {
			return fmt.Errorf("admin not found")
		}
		return nil
	})
}
