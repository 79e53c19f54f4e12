package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/slotswap/internal/identity/domain"
	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	"github.com/google/uuid"
)

// RegisterUserCommand adds a user to the directory.
type RegisterUserCommand struct {
	Email string
	Name  string
}

// RegisterUserResult carries the new user's ID.
type RegisterUserResult struct {
	UserID uuid.UUID
}

// RegisterUserHandler handles RegisterUserCommand.
type RegisterUserHandler struct {
	repo domain.Repository
	uow  sharedApplication.UnitOfWork
}

// NewRegisterUserHandler creates a RegisterUserHandler.
func NewRegisterUserHandler(repo domain.Repository, uow sharedApplication.UnitOfWork) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, uow: uow}
}

// Handle validates the input and inserts the user. A known email returns domain.ErrEmailTaken.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}

	return sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*RegisterUserResult, error) {
		_, err := h.repo.FindByEmail(txCtx, email)
		switch {
		case err == nil:
			return nil, domain.ErrEmailTaken
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}

		user := domain.NewUser(email, name)
		if err := h.repo.Create(txCtx, user); err != nil {
			return nil, err
		}
		return &RegisterUserResult{UserID: user.ID()}, nil
	})
}
