package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
)

// SQLiteSlotRepository implements domain.Repository on SQLite.
// The connection admits one transaction at a time, so GetForUpdate needs no lock clause.
type SQLiteSlotRepository struct {
	conn database.Connection
}

var _ domain.Repository = (*SQLiteSlotRepository)(nil)

// NewSQLiteSlotRepository creates a SQLiteSlotRepository.
func NewSQLiteSlotRepository(conn database.Connection) *SQLiteSlotRepository {
	return &SQLiteSlotRepository{conn: conn}
}

const liteSlotColumns = `id, owner_id, title, start_time, end_time, status, created_at, updated_at`

func (r *SQLiteSlotRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SQLiteSlotRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return scanSQLiteSlot(r.exec(ctx).QueryRow(ctx,
		`SELECT `+liteSlotColumns+` FROM slots WHERE id = ?`, id.String()))
}

func (r *SQLiteSlotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	return r.Get(ctx, id)
}

func (r *SQLiteSlotRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Slot, error) {
	rows, err := r.exec(ctx).Query(ctx,
		`SELECT `+liteSlotColumns+` FROM slots WHERE owner_id = ? ORDER BY start_time, id`, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.Slot
	for rows.Next() {
		slot, err := scanSQLiteSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *SQLiteSlotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO slots (id, owner_id, title, start_time, end_time, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slot.ID().String(), slot.OwnerID().String(), slot.Title(),
		sqlite.FormatTime(slot.Start()), sqlite.FormatTime(slot.End()), string(slot.Status()),
		sqlite.FormatTime(slot.CreatedAt()), sqlite.FormatTime(slot.UpdatedAt()),
	)
	if database.IsForeignKeyViolation(err) {
		return domain.ErrUnknownOwner
	}
	return err
}

func (r *SQLiteSlotRepository) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, patch domain.Patch) error {
	result, err := r.exec(ctx).Exec(ctx, `
		UPDATE slots SET
			title      = COALESCE(?, title),
			start_time = COALESCE(?, start_time),
			end_time   = COALESCE(?, end_time),
			status     = COALESCE(?, status),
			updated_at = ?
		WHERE id = ? AND owner_id = ? AND status <> 'SWAP_PENDING'`,
		patch.Title, timeArg(patch.Start), timeArg(patch.End), statusArg(patch.Status),
		sqlite.FormatTime(time.Now()), id.String(), ownerID.String(),
	)
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotLocked)
}

func (r *SQLiteSlotRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.exec(ctx).Exec(ctx,
		`DELETE FROM slots WHERE id = ? AND owner_id = ? AND status <> 'SWAP_PENDING'`,
		id.String(), ownerID.String())
	if database.IsForeignKeyViolation(err) {
		return domain.ErrSlotReferenced
	}
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func (r *SQLiteSlotRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), sqlite.FormatTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func (r *SQLiteSlotRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) (bool, error) {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), sqlite.FormatTime(time.Now()), id.String(), string(from))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func (r *SQLiteSlotRepository) SetOwnerAndStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.Status) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE slots SET owner_id = ?, status = ?, updated_at = ? WHERE id = ?`,
		ownerID.String(), string(status), sqlite.FormatTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrSlotNotFound)
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return sqlite.FormatTime(*t)
}

func scanSQLiteSlot(row database.Row) (*domain.Slot, error) {
	var id, ownerID, title, start, end, status, createdAt, updatedAt string
	if err := row.Scan(&id, &ownerID, &title, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	var d sqlite.Decoder
	slot := domain.RehydrateSlot(
		d.UUID(id), d.UUID(ownerID), title,
		d.Time(start), d.Time(end), domain.Status(status),
		d.Time(createdAt), d.Time(updatedAt),
	)
	if d.Err != nil {
		return nil, d.Err
	}
	return slot, nil
}
