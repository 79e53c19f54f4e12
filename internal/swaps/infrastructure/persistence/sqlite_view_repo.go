package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// SQLiteViewRepository implements domain.ViewRepository on SQLite.
type SQLiteViewRepository struct {
	conn database.Connection
}

var _ domain.ViewRepository = (*SQLiteViewRepository)(nil)

// NewSQLiteViewRepository creates a SQLiteViewRepository.
func NewSQLiteViewRepository(conn database.Connection) *SQLiteViewRepository {
	return &SQLiteViewRepository{conn: conn}
}

const liteRequestViewSelect = `
	SELECT r.id, u.id, u.name, r.status, r.created_at,
	       rs.id, rs.title, rs.start_time, rs.end_time,
	       ps.id, ps.title, ps.start_time, ps.end_time
	FROM swap_requests r
	JOIN slots rs ON rs.id = r.requester_slot_id
	JOIN slots ps ON ps.id = r.responder_slot_id`

func (r *SQLiteViewRepository) Marketplace(ctx context.Context, callerID uuid.UUID) ([]domain.MarketplaceEntry, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, `
		SELECT s.id, s.owner_id, u.name, s.title, s.start_time, s.end_time
		FROM slots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.status = 'SWAPPABLE' AND s.owner_id <> ?
		ORDER BY s.start_time, s.id`, callerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.MarketplaceEntry{}
	for rows.Next() {
		var slotID, ownerID, ownerName, title, start, end string
		if err := rows.Scan(&slotID, &ownerID, &ownerName, &title, &start, &end); err != nil {
			return nil, err
		}

		var d sqlite.Decoder
		entry := domain.MarketplaceEntry{
			SlotID:    d.UUID(slotID),
			OwnerID:   d.UUID(ownerID),
			OwnerName: ownerName,
			Title:     title,
			StartTime: d.Time(start),
			EndTime:   d.Time(end),
		}
		if d.Err != nil {
			return nil, d.Err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *SQLiteViewRepository) Incoming(ctx context.Context, callerID uuid.UUID) ([]domain.RequestView, error) {
	return r.requests(ctx, liteRequestViewSelect+`
		JOIN users u ON u.id = r.requester_id
		WHERE r.responder_id = ? AND r.status = 'PENDING'
		ORDER BY r.created_at, r.id`, callerID)
}

func (r *SQLiteViewRepository) Outgoing(ctx context.Context, callerID uuid.UUID) ([]domain.RequestView, error) {
	return r.requests(ctx, liteRequestViewSelect+`
		JOIN users u ON u.id = r.responder_id
		WHERE r.requester_id = ?
		ORDER BY r.created_at DESC, r.id DESC`, callerID)
}

func (r *SQLiteViewRepository) requests(ctx context.Context, query string, callerID uuid.UUID) ([]domain.RequestView, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, callerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.RequestView{}
	for rows.Next() {
		var (
			id, counterpartyID, counterpartyName, status, createdAt string
			rsID, rsTitle, rsStart, rsEnd                           string
			psID, psTitle, psStart, psEnd                           string
		)
		err := rows.Scan(&id, &counterpartyID, &counterpartyName, &status, &createdAt,
			&rsID, &rsTitle, &rsStart, &rsEnd,
			&psID, &psTitle, &psStart, &psEnd)
		if err != nil {
			return nil, err
		}

		var d sqlite.Decoder
		view := domain.RequestView{
			ID:               d.UUID(id),
			CounterpartyID:   d.UUID(counterpartyID),
			CounterpartyName: counterpartyName,
			Status:           domain.RequestStatus(status),
			CreatedAt:        d.Time(createdAt),
			RequesterSlot: domain.SlotSummary{
				ID: d.UUID(rsID), Title: rsTitle, StartTime: d.Time(rsStart), EndTime: d.Time(rsEnd),
			},
			ResponderSlot: domain.SlotSummary{
				ID: d.UUID(psID), Title: psTitle, StartTime: d.Time(psStart), EndTime: d.Time(psEnd),
			},
		}
		if d.Err != nil {
			return nil, d.Err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}
