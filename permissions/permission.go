package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one route entry. Public routes skip authentication; an empty role list
// admits any authenticated caller.
type Permission struct {
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Public bool     `json:"skip"`
	Roles  []string `json:"permissions"`
}

// PermissionData is the route table keyed by method and chi pattern.
type PermissionData struct {
	Disabled bool         `json:"skip"`
	Routes   []Permission `json:"endpoints"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Parse decodes a permission file and rejects duplicate routes.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Routes))

	for _, route := range data.Routes {
		key := routeKey(route.Method, route.Path)
		if _, ok := data.index[key]; ok {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		data.index[key] = route
	}

	return &data, nil
}

// Find returns the entry for the route pattern, and false for routes not listed.
func (d *PermissionData) Find(path, method string) (Permission, bool) {
	route, ok := d.index[routeKey(method, path)]

	return route, ok
}

func (d *PermissionData) IsPublic(path, method string) bool {
	route, ok := d.Find(path, method)

	return ok && route.Public
}

// Allows reports whether role may call the route. Unlisted routes are closed.
func (d *PermissionData) Allows(path, method, role string) bool {
	if d.Disabled {
		return true
	}

	route, ok := d.Find(path, method)
	if !ok {
		return false
	}

	return route.Public || len(route.Roles) == 0 || slices.Contains(route.Roles, role)
}

// Get loads the embedded permission file. It returns nil when the file is invalid,
// which makes the RBAC middleware reject every protected route.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("failed to load embedded permissions")

		return nil
	}

	log.Info().Int("routes", len(data.Routes)).Msg("permissions loaded")

	return data
}
