package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	internalApp "github.com/felixgeelhaar/slotswap/internal/app"
	identityCommands "github.com/felixgeelhaar/slotswap/internal/identity/application/commands"
	identityQueries "github.com/felixgeelhaar/slotswap/internal/identity/application/queries"
	slotCommands "github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	slotQueries "github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	swapCommands "github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	swapQueries "github.com/felixgeelhaar/slotswap/internal/swaps/application/queries"
)

// ErrNotInitialized is returned by commands run without a store.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// ErrNoCaller is returned when neither --as nor SLOTSWAP_USER_ID names a user.
var ErrNoCaller = errors.New("no user selected: pass --as <user-id> or set SLOTSWAP_USER_ID")

// App holds the CLI application dependencies.
type App struct {
	// Identity Handlers
	RegisterUserHandler *identityCommands.RegisterUserHandler
	ListUsersHandler    *identityQueries.ListUsersHandler
	GetUserHandler      *identityQueries.GetUserHandler

	// Slot Command Handlers
	CreateSlotHandler *slotCommands.CreateSlotHandler
	UpdateSlotHandler *slotCommands.UpdateSlotHandler
	DeleteSlotHandler *slotCommands.DeleteSlotHandler

	// Slot Query Handlers
	ListMySlotsHandler    *slotQueries.ListMySlotsHandler
	ExportCalendarHandler *slotQueries.ExportCalendarHandler

	// Swap Command Handlers
	ProposeSwapHandler   *swapCommands.ProposeSwapHandler
	RespondToSwapHandler *swapCommands.RespondToSwapHandler

	// Swap Query Handlers
	ListMarketplaceHandler *swapQueries.ListMarketplaceHandler
	ListIncomingHandler    *swapQueries.ListIncomingHandler
	ListOutgoingHandler    *swapQueries.ListOutgoingHandler
	RequestHistoryHandler  *swapQueries.RequestHistoryHandler

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a CLI application backed by the container's handlers.
func NewApp(c *internalApp.Container) *App {
	return &App{
		RegisterUserHandler:    c.RegisterUserHandler,
		ListUsersHandler:       c.ListUsersHandler,
		GetUserHandler:         c.GetUserHandler,
		CreateSlotHandler:      c.CreateSlotHandler,
		UpdateSlotHandler:      c.UpdateSlotHandler,
		DeleteSlotHandler:      c.DeleteSlotHandler,
		ListMySlotsHandler:     c.ListMySlotsHandler,
		ExportCalendarHandler:  c.ExportCalendarHandler,
		ProposeSwapHandler:     c.ProposeSwapHandler,
		RespondToSwapHandler:   c.RespondToSwapHandler,
		ListMarketplaceHandler: c.ListMarketplaceHandler,
		ListIncomingHandler:    c.ListIncomingHandler,
		ListOutgoingHandler:    c.ListOutgoingHandler,
		RequestHistoryHandler:  c.RequestHistoryHandler,
		CurrentUserID:          uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// RequireApp returns the application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// CallerID returns the user the command acts as. --as wins over the configured user.
func CallerID() (uuid.UUID, error) {
	if asUser != "" {
		id, err := uuid.Parse(asUser)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid --as user id: %w", err)
		}
		return id, nil
	}
	if app == nil || app.CurrentUserID == uuid.Nil {
		return uuid.Nil, ErrNoCaller
	}
	return app.CurrentUserID, nil
}
