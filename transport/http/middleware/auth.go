package middleware

import (
	"context"
	"errors"
	"heritage/config"
	"heritage/infras/jwt"
	"heritage/infras/otel"
	"heritage/permissions"
	"heritage/shared/constant"
	"heritage/shared/failure"
	"heritage/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService  jwt.JWT
	otel        otel.Otel
	permissions *permissions.PermissionData
	cfg         *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService:  jwtService,
		otel:        otel,
		permissions: permissions,
		cfg:         cfg,
	}
}

func isInternalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// Auth puts the identity from a bearer token issued by the identity provider on the
// request context. Public routes, internal calls and unknown routes pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		pattern := routePattern(request)

		if isInternalCall(ctx) || pattern == constant.Empty || (m.permissions != nil && m.permissions.IsPublic(pattern, request.Method)) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"http.route":  pattern,
			"http.method": request.Method,
		})

		claims, err := m.authenticate(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserName, claims.Name)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(header string) (*jwt.Claims, error) {
	if header == constant.Empty {
		return nil, failure.Unauthorized("Missing authorization header") // nolint:wrapcheck
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format") // nolint:wrapcheck
	}

	claims, err := m.jwtService.ValidateToken(token)

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, failure.Unauthorized("Token has expired") // nolint:wrapcheck
	case errors.Is(err, jwt.ErrInvalidClaim):
		log.Warn().Msg("token without user id")

		return nil, failure.Unauthorized("Invalid token claims") // nolint:wrapcheck
	default:
		return nil, failure.Unauthorized("Invalid token") // nolint:wrapcheck
	}
}

// RBAC admits the caller when the role from Auth is listed for the route.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		pattern := routePattern(request)

		if isInternalCall(ctx) || pattern == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permissions == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !m.permissions.Allows(pattern, request.Method, role) {
			scope.SetAttributes(map[string]any{
				"user.role":  role,
				"http.route": pattern,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the service key as internal so Auth and RBAC let them
// through. A wrong key is rejected outright.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || key != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallKey{}, true)))
	})
}

// routePattern resolves the chi pattern a request will be routed to, e.g. /v1/places/{id}.
// It is empty when no route matches.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}
