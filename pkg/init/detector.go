package init

import (
	"context"

	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// Authenticator opens and closes tracker sessions. *youtrack.Client implements it.
type Authenticator interface {
	Login(ctx context.Context) (*youtrack.Session, error)
	Logout(session *youtrack.Session) error
}

// ConnectionDetector checks that the configured tracker accepts the credentials
type ConnectionDetector struct {
	auth Authenticator
}

// NewConnectionDetector creates a new ConnectionDetector instance
func NewConnectionDetector(auth Authenticator) *ConnectionDetector {
	return &ConnectionDetector{
		auth: auth,
	}
}

// Verify logs in and immediately out again
func (d *ConnectionDetector) Verify(ctx context.Context) error {
	session, err := d.auth.Login(ctx)
	if err != nil {
		return NewTrackerError("failed to log in to the tracker", err)
	}

	if err := d.auth.Logout(session); err != nil {
		return NewFileSystemError("failed to end the tracker session", err)
	}

	return nil
}
