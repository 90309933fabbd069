// Package testutil provides testing utilities.
package testutil

import (
	"net/http"

	"github.com/TWRT/task-board/internal/auth"
	"github.com/TWRT/task-board/internal/models"
)

// UserHeader names the request header FakeSessions reads the user id from.
const UserHeader = "X-Test-User"

// FakeSessions authenticates any request carrying UserHeader.
type FakeSessions struct {
	// GetUserErr, when set, is returned by GetUser even for authenticated
	// requests.
	GetUserErr error
}

func (f *FakeSessions) IsAuthenticated(r *http.Request) bool {
	return r.Header.Get(UserHeader) != ""
}

func (f *FakeSessions) GetUser(r *http.Request) (*models.User, error) {
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	id := r.Header.Get(UserHeader)
	if id == "" {
		return nil, auth.ErrUnauthenticated
	}
	return &models.User{ID: id}, nil
}

var _ auth.SessionProvider = (*FakeSessions)(nil)
