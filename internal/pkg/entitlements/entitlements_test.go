package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

func TestAllowed(t *testing.T) {
	anonymous := usercontext.UserContext{}
	member := usercontext.UserContext{UserID: 1, IsLoggedIn: true}
	premium := usercontext.UserContext{UserID: 2, IsLoggedIn: true, IsPremium: true}
	admin := usercontext.UserContext{UserID: 3, IsLoggedIn: true, IsAdmin: true}

	tests := []struct {
		name string
		ctx  usercontext.UserContext
		cap  Capability
		want bool
	}{
		{"anonymous cannot authenticate", anonymous, CapAuthenticated, false},
		{"member is authenticated", member, CapAuthenticated, true},
		{"member is not premium", member, CapPremium, false},
		{"premium user is premium", premium, CapPremium, true},
		{"admin implies premium", admin, CapPremium, true},
		{"premium user is not admin", premium, CapAdmin, false},
		{"admin is admin", admin, CapAdmin, true},
		{"unknown capability denied", admin, Capability("billing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.ctx, tt.cap))
		})
	}
}
