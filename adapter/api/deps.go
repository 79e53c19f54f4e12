package api

import (
	"context"

	slotCommands "github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	slotQueries "github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	swapCommands "github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	swapQueries "github.com/felixgeelhaar/slotswap/internal/swaps/application/queries"
)

// Dependencies holds the application handlers the API calls.
type Dependencies struct {
	Auth        *Authenticator
	Idempotency *IdempotencyGuard
	// Ping reports store health for GET /health. Nil always reports healthy.
	Ping func(ctx context.Context) error

	// Slots
	CreateSlot     *slotCommands.CreateSlotHandler
	UpdateSlot     *slotCommands.UpdateSlotHandler
	DeleteSlot     *slotCommands.DeleteSlotHandler
	ListMySlots    *slotQueries.ListMySlotsHandler
	ExportCalendar *slotQueries.ExportCalendarHandler

	// Swaps
	ProposeSwap     *swapCommands.ProposeSwapHandler
	RespondToSwap   *swapCommands.RespondToSwapHandler
	ListMarketplace *swapQueries.ListMarketplaceHandler
	ListIncoming    *swapQueries.ListIncomingHandler
	ListOutgoing    *swapQueries.ListOutgoingHandler
	RequestHistory  *swapQueries.RequestHistoryHandler
}
