package queries

import (
	"context"

	"github.com/felixgeelhaar/slotswap/internal/identity/domain"
	"github.com/google/uuid"
)

// UserDTO is a directory entry.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:    user.ID(),
		Email: user.Email().String(),
		Name:  user.Name().String(),
	}
}

// ListUsersHandler lists the directory.
type ListUsersHandler struct {
	repo domain.Repository
}

// NewListUsersHandler creates a ListUsersHandler.
func NewListUsersHandler(repo domain.Repository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle returns every user ordered by name.
func (h *ListUsersHandler) Handle(ctx context.Context) ([]UserDTO, error) {
	users, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	return dtos, nil
}

// GetUserHandler looks up one user.
type GetUserHandler struct {
	repo domain.Repository
}

// NewGetUserHandler creates a GetUserHandler.
func NewGetUserHandler(repo domain.Repository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle returns domain.ErrUserNotFound for unknown IDs.
func (h *GetUserHandler) Handle(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := h.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}
