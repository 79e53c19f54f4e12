package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
)

// PostgresSlotRepository implements domain.Repository on PostgreSQL.
type PostgresSlotRepository struct {
	conn database.Connection
}

var _ domain.Repository = (*PostgresSlotRepository)(nil)

// NewPostgresSlotRepository creates a PostgresSlotRepository.
func NewPostgresSlotRepository(conn database.Connection) *PostgresSlotRepository {
	return &PostgresSlotRepository{conn: conn}
}

const pgSlotColumns = `id, owner_id, title, start_time, end_time, status, created_at, updated_at`

func (r *PostgresSlotRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *PostgresSlotRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return scanPostgresSlot(r.exec(ctx).QueryRow(ctx,
		`SELECT `+pgSlotColumns+` FROM slots WHERE id = $1`, id))
}

func (r *PostgresSlotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return scanPostgresSlot(r.exec(ctx).QueryRow(ctx,
		`SELECT `+pgSlotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, id))
}

func (r *PostgresSlotRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Slot, error) {
	rows, err := r.exec(ctx).Query(ctx,
		`SELECT `+pgSlotColumns+` FROM slots WHERE owner_id = $1 ORDER BY start_time, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.Slot
	for rows.Next() {
		slot, err := scanPostgresSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *PostgresSlotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO slots (id, owner_id, title, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		slot.ID(), slot.OwnerID(), slot.Title(), slot.Start(), slot.End(),
		string(slot.Status()), slot.CreatedAt(), slot.UpdatedAt(),
	)
	if database.IsForeignKeyViolation(err) {
		return domain.ErrUnknownOwner
	}
	return err
}

func (r *PostgresSlotRepository) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, patch domain.Patch) error {
	result, err := r.exec(ctx).Exec(ctx, `
		UPDATE slots SET
			title      = COALESCE($3::text, title),
			start_time = COALESCE($4::timestamptz, start_time),
			end_time   = COALESCE($5::timestamptz, end_time),
			status     = COALESCE($6::text, status),
			updated_at = $7
		WHERE id = $1 AND owner_id = $2 AND status <> 'SWAP_PENDING'`,
		id, ownerID, patch.Title, patch.Start, patch.End, statusArg(patch.Status), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotLocked)
}

func (r *PostgresSlotRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.exec(ctx).Exec(ctx,
		`DELETE FROM slots WHERE id = $1 AND owner_id = $2 AND status <> 'SWAP_PENDING'`, id, ownerID)
	if database.IsForeignKeyViolation(err) {
		return domain.ErrSlotReferenced
	}
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func (r *PostgresSlotRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func (r *PostgresSlotRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (bool, error) {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func (r *PostgresSlotRepository) SetOwnerAndStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.Status) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET owner_id = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, ownerID, string(status), time.Now().UTC())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func scanPostgresSlot(row database.Row) (*domain.Slot, error) {
	var (
		id, ownerID          uuid.UUID
		title, status        string
		start, end           time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &title, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return domain.RehydrateSlot(id, ownerID, title, start, end, domain.Status(status), createdAt, updatedAt), nil
}
