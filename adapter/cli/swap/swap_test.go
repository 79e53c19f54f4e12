package swap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotswap/adapter/cli"
	internalApp "github.com/felixgeelhaar/slotswap/internal/app"
	identityCommands "github.com/felixgeelhaar/slotswap/internal/identity/application/commands"
	slotCommands "github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/felixgeelhaar/slotswap/pkg/config"
)

type fixture struct {
	t     *testing.T
	app   *cli.App
	alice uuid.UUID
	bob   uuid.UUID
}

func setupLocalModeTestApp(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		AppEnv:         "test",
		LocalMode:      true,
		DatabaseDriver: "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel:       "error",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })

	f := &fixture{t: t, app: app}
	f.alice = f.user("alice@example.com", "Alice")
	f.bob = f.user("bob@example.com", "Bob")
	return f
}

func (f *fixture) user(email, name string) uuid.UUID {
	f.t.Helper()
	res, err := f.app.RegisterUserHandler.Handle(context.Background(), identityCommands.RegisterUserCommand{Email: email, Name: name})
	require.NoError(f.t, err)
	return res.UserID
}

func (f *fixture) swappableSlot(owner uuid.UUID, title string, start time.Time) uuid.UUID {
	f.t.Helper()
	ctx := context.Background()

	created, err := f.app.CreateSlotHandler.Handle(ctx, slotCommands.CreateSlotCommand{
		OwnerID: owner,
		Title:   title,
		Start:   start,
		End:     start.Add(time.Hour),
	})
	require.NoError(f.t, err)

	status := slotDomain.StatusSwappable
	_, err = f.app.UpdateSlotHandler.Handle(ctx, slotCommands.UpdateSlotCommand{
		SlotID:   created.SlotID,
		CallerID: owner,
		Patch:    slotDomain.Patch{Status: &status},
	})
	require.NoError(f.t, err)
	return created.SlotID
}

// as runs cmd acting as caller.
func (f *fixture) as(caller uuid.UUID, cmd *cobra.Command, args ...string) (string, error) {
	f.t.Helper()
	f.app.SetCurrentUserID(caller)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestSwapCommands_AcceptFlow(t *testing.T) {
	f := setupLocalModeTestApp(t)
	aliceSlot := f.swappableSlot(f.alice, "Standup", monday)
	bobSlot := f.swappableSlot(f.bob, "Review", monday.Add(24*time.Hour))

	out, err := f.as(f.alice, marketCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Review (Bob)")
	assert.NotContains(t, out, "Standup")

	out, err = f.as(f.alice, proposeCmd, aliceSlot.String(), bobSlot.String())
	require.NoError(t, err)
	require.Contains(t, out, "Swap proposed: ")

	requests, err := f.app.ListIncomingHandler.Handle(context.Background(), f.bob)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	requestID := requests[0].ID.String()

	out, err = f.as(f.bob, incomingCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "from Alice")
	assert.Contains(t, out, "offers: Standup")

	out, err = f.as(f.alice, outgoingCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "[?] "+requestID+" to Bob")

	_, err = f.as(f.alice, acceptCmd, requestID)
	assert.ErrorIs(t, err, domain.ErrNotAuthorizedOrStale)

	out, err = f.as(f.bob, acceptCmd, requestID)
	require.NoError(t, err)
	assert.Contains(t, out, "Swap ACCEPTED")
	assert.Contains(t, out, "you now own: Standup")

	out, err = f.as(f.bob, incomingCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No pending swaps for you.")

	historyStatus, historyOutgoing = "accepted", false
	defer func() { historyStatus = "" }()
	out, err = f.as(f.bob, historyCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+requestID+" ACCEPTED")
}

func TestSwapCommands_Reject(t *testing.T) {
	f := setupLocalModeTestApp(t)
	aliceSlot := f.swappableSlot(f.alice, "Standup", monday)
	bobSlot := f.swappableSlot(f.bob, "Review", monday.Add(24*time.Hour))

	_, err := f.as(f.alice, proposeCmd, aliceSlot.String(), bobSlot.String())
	require.NoError(t, err)
	requests, err := f.app.ListIncomingHandler.Handle(context.Background(), f.bob)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	out, err := f.as(f.bob, rejectCmd, requests[0].ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Swap REJECTED")

	out, err = f.as(f.alice, marketCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Review (Bob)")
}

func TestSwapCommands_Errors(t *testing.T) {
	f := setupLocalModeTestApp(t)
	aliceSlot := f.swappableSlot(f.alice, "Standup", monday)
	otherAliceSlot := f.swappableSlot(f.alice, "Lunch", monday.Add(3*time.Hour))

	_, err := f.as(f.alice, proposeCmd, aliceSlot.String(), otherAliceSlot.String())
	assert.ErrorIs(t, err, domain.ErrSelfSwap)

	_, err = f.as(f.alice, proposeCmd, aliceSlot.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.as(f.alice, proposeCmd, "not-a-uuid", aliceSlot.String())
	assert.ErrorContains(t, err, "invalid slot id")

	_, err = f.as(f.bob, acceptCmd, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.as(uuid.Nil, marketCmd)
	assert.ErrorIs(t, err, cli.ErrNoCaller)
}
