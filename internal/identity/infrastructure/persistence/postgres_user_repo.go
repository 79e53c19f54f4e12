package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/identity/domain"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
)

// PostgresUserRepository stores users in PostgreSQL.
type PostgresUserRepository struct {
	conn database.Connection
}

// NewPostgresUserRepository creates a PostgresUserRepository.
func NewPostgresUserRepository(conn database.Connection) *PostgresUserRepository {
	return &PostgresUserRepository{conn: conn}
}

const pgUserColumns = `id, email, name, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID(), user.Email().String(), user.Name().String(), user.CreatedAt(), user.UpdatedAt(),
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+pgUserColumns+` FROM users WHERE id = $1`, id)
	return scanPostgresUser(row)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+pgUserColumns+` FROM users WHERE email = $1`, email.String())
	return scanPostgresUser(row)
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+pgUserColumns+` FROM users ORDER BY name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanPostgresUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanPostgresUser(row database.Row) (*domain.User, error) {
	var (
		id                   uuid.UUID
		email, name          string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &email, &name, &createdAt, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return rehydrate(id, email, name, createdAt, updatedAt)
}

func rehydrate(id uuid.UUID, email, name string, createdAt, updatedAt time.Time) (*domain.User, error) {
	e, err := domain.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("stored user %s: %w", id, err)
	}
	n, err := domain.NewName(name)
	if err != nil {
		return nil, fmt.Errorf("stored user %s: %w", id, err)
	}
	return domain.RehydrateUser(id, e, n, createdAt, updatedAt), nil
}
