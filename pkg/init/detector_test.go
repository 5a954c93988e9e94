package init

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context) (*youtrack.Session, error) {
	args := m.Called(ctx)
	session, _ := args.Get(0).(*youtrack.Session)
	return session, args.Error(1)
}

func (m *MockAuthenticator) Logout(session *youtrack.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func TestConnectionDetector_Verify(t *testing.T) {
	session := &youtrack.Session{}

	tests := []struct {
		name       string
		loginErr   error
		logoutErr  error
		wantType   ErrorType
		wantLogout bool
		wantError  bool
	}{
		{
			name:       "successful login",
			wantLogout: true,
		},
		{
			name:      "login rejected",
			loginErr:  youtrack.NewAuthError("login rejected", nil),
			wantType:  ErrorTypeTracker,
			wantError: true,
		},
		{
			name:       "cookie file left behind",
			logoutErr:  youtrack.NewSessionError("/tmp/yt-cookie-1", errors.New("permission denied")),
			wantType:   ErrorTypeFileSystem,
			wantLogout: true,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			if tt.loginErr != nil {
				auth.On("Login", mock.Anything).Return(nil, tt.loginErr)
			} else {
				auth.On("Login", mock.Anything).Return(session, nil)
				auth.On("Logout", session).Return(tt.logoutErr)
			}

			err := NewConnectionDetector(auth).Verify(context.Background())

			if tt.wantError {
				var initErr *InitError
				assert.ErrorAs(t, err, &initErr)
				assert.Equal(t, tt.wantType, initErr.Type)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantLogout {
				auth.AssertCalled(t, "Logout", session)
			} else {
				auth.AssertNotCalled(t, "Logout", mock.Anything)
			}
		})
	}
}

func TestConnectionDetector_KeepsTrackerErrorType(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything).Return(nil, youtrack.NewAuthError("login rejected", nil))

	err := NewConnectionDetector(auth).Verify(context.Background())

	assert.ErrorIs(t, err, youtrack.ErrAuth)
}
