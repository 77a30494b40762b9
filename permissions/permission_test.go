package permissions_test

import (
	"heritage/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.IsPublic("/v1/places", "GET"))
	assert.True(t, data.IsPublic("/v1/crowd/forecast", "get"))
	assert.False(t, data.IsPublic("/v1/bookings", "POST"))

	create, ok := data.Find("/v1/places", "POST")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"admin", "superadmin"}, create.Roles)
}

func TestAllows(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		role   string
		want   bool
	}{
		{name: "visitor books", path: "/v1/bookings", method: "POST", role: "user", want: true},
		{name: "visitor reads public place", path: "/v1/places/{id}", method: "GET", role: "", want: true},
		{name: "visitor cannot edit place", path: "/v1/places/{id}", method: "PATCH", role: "user", want: false},
		{name: "admin edits place", path: "/v1/places/{id}", method: "PATCH", role: "admin", want: true},
		{name: "admin uploads image", path: "/v1/places/{id}/images", method: "POST", role: "admin", want: true},
		{name: "unlisted route", path: "/v1/unknown", method: "GET", role: "superadmin", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.Allows(tt.path, tt.method, tt.role))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("disabled table allows everything", func(t *testing.T) {
		data, err := permissions.Parse([]byte(`{"skip": true, "endpoints": []}`))
		require.NoError(t, err)

		assert.True(t, data.Allows("/v1/anything", "DELETE", ""))
	})

	t.Run("duplicate route", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints": [
			{"path": "/v1/places", "method": "GET", "skip": true},
			{"path": "/v1/places", "method": "get", "skip": false}
		]}`))

		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{`))

		assert.Error(t, err)
	})
}
