package authdomain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_IsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{name: "nil session", session: nil, want: false},
		{name: "valid admin", session: &Session{Role: RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}, want: true},
		{name: "expired admin", session: &Session{Role: RoleAdmin, ExpiresAt: time.Now().Add(-time.Minute)}, want: false},
		{name: "viewer", session: &Session{Role: RoleViewer, ExpiresAt: time.Now().Add(time.Hour)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.IsAdmin())
		})
	}
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	s := &Session{ID: "abc", Role: RoleAdmin}
	got, ok := SessionFromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = SessionFromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleViewer.IsValid())
	assert.False(t, Role("owner").IsValid())
	assert.Equal(t, "admin", RoleAdmin.String())
}
