package permissions_test

import (
	"testing"

	"tavola/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		want   []string
		skip   bool
	}{
		{
			name:   "availability is public",
			path:   "/v1/availability",
			method: "GET",
			skip:   true,
		},
		{
			name:   "listing all reservations is staff only",
			path:   "/v1/reservations",
			method: "GET",
			want:   []string{"admin", "superadmin"},
		},
		{
			name:   "customers list their own reservations",
			path:   "/v1/reservations/myreservations",
			method: "GET",
			want:   []string{"user", "admin", "superadmin"},
		},
		{
			name:   "status transitions are staff only",
			path:   "/v1/reservations/{id}/status",
			method: "POST",
			want:   []string{"admin", "superadmin"},
		},
		{
			name:   "unknown endpoint has no grants",
			path:   "/v1/nope",
			method: "GET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.want, permission.Permissions)
		})
	}
}
