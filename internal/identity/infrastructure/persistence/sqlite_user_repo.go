package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/identity/domain"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/sqlite"
)

// SQLiteUserRepository stores users in SQLite.
type SQLiteUserRepository struct {
	conn database.Connection
}

// NewSQLiteUserRepository creates a SQLiteUserRepository.
func NewSQLiteUserRepository(conn database.Connection) *SQLiteUserRepository {
	return &SQLiteUserRepository{conn: conn}
}

const liteUserColumns = `id, email, name, created_at, updated_at`

func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID().String(), user.Email().String(), user.Name().String(),
		sqlite.FormatTime(user.CreatedAt()), sqlite.FormatTime(user.UpdatedAt()),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+liteUserColumns+` FROM users WHERE id = ?`, id.String())
	return scanSQLiteUser(row)
}

func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+liteUserColumns+` FROM users WHERE email = ?`, email.String())
	return scanSQLiteUser(row)
}

func (r *SQLiteUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+liteUserColumns+` FROM users ORDER BY name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanSQLiteUser(row database.Row) (*domain.User, error) {
	var id, email, name, createdAt, updatedAt string
	if err := row.Scan(&id, &email, &name, &createdAt, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	created, err := sqlite.ParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := sqlite.ParseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return rehydrate(uid, email, name, created, updated)
}
