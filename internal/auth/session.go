// Package auth defines the session provider the request handlers consult
// before touching any task, and a JWT bearer implementation of it.
package auth

import (
	"errors"
	"net/http"

	"github.com/TWRT/task-board/internal/models"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// SessionProvider answers who is calling. Implementations must return
// ErrUnauthenticated from GetUser when IsAuthenticated would be false.
type SessionProvider interface {
	IsAuthenticated(r *http.Request) bool
	GetUser(r *http.Request) (*models.User, error)
}
