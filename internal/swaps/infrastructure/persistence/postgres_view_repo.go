package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// PostgresViewRepository implements domain.ViewRepository on PostgreSQL.
type PostgresViewRepository struct {
	conn database.Connection
}

var _ domain.ViewRepository = (*PostgresViewRepository)(nil)

// NewPostgresViewRepository creates a PostgresViewRepository.
func NewPostgresViewRepository(conn database.Connection) *PostgresViewRepository {
	return &PostgresViewRepository{conn: conn}
}

const pgRequestViewSelect = `
	SELECT r.id, u.id, u.name, r.status, r.created_at,
	       rs.id, rs.title, rs.start_time, rs.end_time,
	       ps.id, ps.title, ps.start_time, ps.end_time
	FROM swap_requests r
	JOIN slots rs ON rs.id = r.requester_slot_id
	JOIN slots ps ON ps.id = r.responder_slot_id`

func (r *PostgresViewRepository) Marketplace(ctx context.Context, callerID uuid.UUID) ([]domain.MarketplaceEntry, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, `
		SELECT s.id, s.owner_id, u.name, s.title, s.start_time, s.end_time
		FROM slots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.status = 'SWAPPABLE' AND s.owner_id <> $1
		ORDER BY s.start_time, s.id`, callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.MarketplaceEntry{}
	for rows.Next() {
		var e domain.MarketplaceEntry
		if err := rows.Scan(&e.SlotID, &e.OwnerID, &e.OwnerName, &e.Title, &e.StartTime, &e.EndTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresViewRepository) Incoming(ctx context.Context, callerID uuid.UUID) ([]domain.RequestView, error) {
	return r.requests(ctx, pgRequestViewSelect+`
		JOIN users u ON u.id = r.requester_id
		WHERE r.responder_id = $1 AND r.status = 'PENDING'
		ORDER BY r.created_at, r.id`, callerID)
}

func (r *PostgresViewRepository) Outgoing(ctx context.Context, callerID uuid.UUID) ([]domain.RequestView, error) {
	return r.requests(ctx, pgRequestViewSelect+`
		JOIN users u ON u.id = r.responder_id
		WHERE r.requester_id = $1
		ORDER BY r.created_at DESC, r.id DESC`, callerID)
}

func (r *PostgresViewRepository) requests(ctx context.Context, query string, callerID uuid.UUID) ([]domain.RequestView, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.RequestView{}
	for rows.Next() {
		var (
			v      domain.RequestView
			status string
		)
		err := rows.Scan(&v.ID, &v.CounterpartyID, &v.CounterpartyName, &status, &v.CreatedAt,
			&v.RequesterSlot.ID, &v.RequesterSlot.Title, &v.RequesterSlot.StartTime, &v.RequesterSlot.EndTime,
			&v.ResponderSlot.ID, &v.ResponderSlot.Title, &v.ResponderSlot.StartTime, &v.ResponderSlot.EndTime)
		if err != nil {
			return nil, err
		}
		v.Status = domain.RequestStatus(status)
		views = append(views, v)
	}
	return views, rows.Err()
}
