package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// SQLiteSwapRepository implements domain.Repository on SQLite.
type SQLiteSwapRepository struct {
	conn database.Connection
}

var _ domain.Repository = (*SQLiteSwapRepository)(nil)

// NewSQLiteSwapRepository creates a SQLiteSwapRepository.
func NewSQLiteSwapRepository(conn database.Connection) *SQLiteSwapRepository {
	return &SQLiteSwapRepository{conn: conn}
}

const liteRequestColumns = `id, requester_id, responder_id, requester_slot_id, responder_slot_id, status, created_at, updated_at`

func (r *SQLiteSwapRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SQLiteSwapRepository) Get(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return scanSQLiteRequest(r.exec(ctx).QueryRow(ctx,
		`SELECT `+liteRequestColumns+` FROM swap_requests WHERE id = ?`, id.String()))
}

// GetForUpdate is Get: the single connection already serializes transactions.
func (r *SQLiteSwapRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return r.Get(ctx, id)
}

func (r *SQLiteSwapRepository) ListIncoming(ctx context.Context, responderID uuid.UUID, status *domain.RequestStatus) ([]*domain.SwapRequest, error) {
	if status == nil {
		return r.list(ctx, `
			SELECT `+liteRequestColumns+` FROM swap_requests
			WHERE responder_id = ?
			ORDER BY created_at, id`, responderID.String())
	}
	return r.list(ctx, `
		SELECT `+liteRequestColumns+` FROM swap_requests
		WHERE responder_id = ? AND status = ?
		ORDER BY created_at, id`, responderID.String(), status.String())
}

func (r *SQLiteSwapRepository) ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]*domain.SwapRequest, error) {
	return r.list(ctx, `
		SELECT `+liteRequestColumns+` FROM swap_requests
		WHERE requester_id = ?
		ORDER BY created_at DESC, id DESC`, requesterID.String())
}

func (r *SQLiteSwapRepository) list(ctx context.Context, query string, args ...any) ([]*domain.SwapRequest, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.SwapRequest
	for rows.Next() {
		request, err := scanSQLiteRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *SQLiteSwapRepository) Create(ctx context.Context, request *domain.SwapRequest) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO swap_requests (`+liteRequestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		request.ID().String(), request.RequesterID().String(), request.ResponderID().String(),
		request.RequesterSlotID().String(), request.ResponderSlotID().String(),
		request.Status().String(), sqlite.FormatTime(request.CreatedAt()), sqlite.FormatTime(request.UpdatedAt()),
	)
	return err
}

func (r *SQLiteSwapRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE swap_requests SET status = ?, updated_at = ? WHERE id = ? AND status = 'PENDING'`,
		status.String(), sqlite.FormatTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrRequestNotPending)
}

func (r *SQLiteSwapRepository) RejectAllPendingReferencing(ctx context.Context, slotIDs []uuid.UUID) ([]*domain.SwapRequest, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(slotIDs)), ", ")
	args := make([]any, 0, 2*len(slotIDs)+1)
	args = append(args, sqlite.FormatTime(time.Now()))
	for range 2 {
		for _, id := range slotIDs {
			args = append(args, id.String())
		}
	}

	return r.list(ctx, `
		UPDATE swap_requests SET status = 'REJECTED', updated_at = ?
		WHERE status = 'PENDING'
		  AND (requester_slot_id IN (`+placeholders+`) OR responder_slot_id IN (`+placeholders+`))
		RETURNING `+liteRequestColumns,
		args...)
}

func scanSQLiteRequest(row database.Row) (*domain.SwapRequest, error) {
	var id, requesterID, responderID, requesterSlotID, responderSlotID, status, createdAt, updatedAt string
	err := row.Scan(&id, &requesterID, &responderID, &requesterSlotID, &responderSlotID,
		&status, &createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}

	var d sqlite.Decoder
	request := domain.RehydrateSwapRequest(
		d.UUID(id), d.UUID(requesterID), d.UUID(responderID),
		d.UUID(requesterSlotID), d.UUID(responderSlotID),
		domain.RequestStatus(status), d.Time(createdAt), d.Time(updatedAt),
	)
	if d.Err != nil {
		return nil, d.Err
	}
	return request, nil
}
