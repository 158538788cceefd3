package repository

import (
	"context"
	"errors"

	"github.com/Houeta/stock-flow/internal/models"
)

// ErrStateNotFound is returned when nothing has been saved yet.
var ErrStateNotFound = errors.New("state not found")

// StateRepository persists the notification state between restarts.
type StateRepository interface {
	// GetState returns the last saved state or ErrStateNotFound.
	GetState(ctx context.Context) (*models.State, error)
	// UpdateState replaces the saved state.
	UpdateState(ctx context.Context, state *models.State) error
}
