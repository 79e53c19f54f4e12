package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// PostgresSwapRepository implements domain.Repository on PostgreSQL.
type PostgresSwapRepository struct {
	conn database.Connection
}

var _ domain.Repository = (*PostgresSwapRepository)(nil)

// NewPostgresSwapRepository creates a PostgresSwapRepository.
func NewPostgresSwapRepository(conn database.Connection) *PostgresSwapRepository {
	return &PostgresSwapRepository{conn: conn}
}

const pgRequestColumns = `id, requester_id, responder_id, requester_slot_id, responder_slot_id, status, created_at, updated_at`

func (r *PostgresSwapRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *PostgresSwapRepository) Get(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return scanPostgresRequest(r.exec(ctx).QueryRow(ctx,
		`SELECT `+pgRequestColumns+` FROM swap_requests WHERE id = $1`, id))
}

func (r *PostgresSwapRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return scanPostgresRequest(r.exec(ctx).QueryRow(ctx,
		`SELECT `+pgRequestColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id))
}

func (r *PostgresSwapRepository) ListIncoming(ctx context.Context, responderID uuid.UUID, status *domain.RequestStatus) ([]*domain.SwapRequest, error) {
	var statusFilter *string
	if status != nil {
		s := status.String()
		statusFilter = &s
	}
	return r.list(ctx, `
		SELECT `+pgRequestColumns+` FROM swap_requests
		WHERE responder_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at, id`, responderID, statusFilter)
}

func (r *PostgresSwapRepository) ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]*domain.SwapRequest, error) {
	return r.list(ctx, `
		SELECT `+pgRequestColumns+` FROM swap_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC, id DESC`, requesterID)
}

func (r *PostgresSwapRepository) list(ctx context.Context, query string, args ...any) ([]*domain.SwapRequest, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.SwapRequest
	for rows.Next() {
		request, err := scanPostgresRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *PostgresSwapRepository) Create(ctx context.Context, request *domain.SwapRequest) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO swap_requests (`+pgRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		request.ID(), request.RequesterID(), request.ResponderID(),
		request.RequesterSlotID(), request.ResponderSlotID(),
		request.Status().String(), request.CreatedAt(), request.UpdatedAt(),
	)
	return err
}

func (r *PostgresSwapRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	result, err := r.exec(ctx).Exec(ctx,
		`UPDATE swap_requests SET status = $2, updated_at = $3 WHERE id = $1 AND status = 'PENDING'`,
		id, status.String(), time.Now().UTC())
	if err != nil {
		return err
	}
	return database.RequireAffected(result, domain.ErrRequestNotPending)
}

func (r *PostgresSwapRepository) RejectAllPendingReferencing(ctx context.Context, slotIDs []uuid.UUID) ([]*domain.SwapRequest, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, `
		UPDATE swap_requests SET status = 'REJECTED', updated_at = $2
		WHERE status = 'PENDING'
		  AND (requester_slot_id = ANY($1) OR responder_slot_id = ANY($1))
		RETURNING `+pgRequestColumns,
		slotIDs, time.Now().UTC())
}

func scanPostgresRequest(row database.Row) (*domain.SwapRequest, error) {
	var (
		id, requesterID, responderID     uuid.UUID
		requesterSlotID, responderSlotID uuid.UUID
		status                           string
		createdAt, updatedAt             time.Time
	)
	err := row.Scan(&id, &requesterID, &responderID, &requesterSlotID, &responderSlotID,
		&status, &createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return domain.RehydrateSwapRequest(id, requesterID, responderID, requesterSlotID, responderSlotID,
		domain.RequestStatus(status), createdAt, updatedAt), nil
}
