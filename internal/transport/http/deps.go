package http

import (
	nethttp "net/http"

	"github.com/hypideas/identity-api/internal/application/account"
	"github.com/hypideas/identity-api/internal/application/auth"
	"github.com/hypideas/identity-api/internal/application/avatar"
	"github.com/hypideas/identity-api/internal/application/interest"
	"github.com/hypideas/identity-api/internal/application/notification"
	"github.com/hypideas/identity-api/internal/application/role"
	"github.com/hypideas/identity-api/internal/application/session"
	"github.com/hypideas/identity-api/internal/application/user"
	jwtinfra "github.com/hypideas/identity-api/internal/infrastructure/jwt"
	appmiddleware "github.com/hypideas/identity-api/internal/transport/http/middleware"
)

// Deps bundles everything the router needs. AccountSvc may be nil unless
// MOCK_AUTH is enabled; MetricsHandler may be nil to skip the /metrics mount.
type Deps struct {
	UserSvc         user.Service
	SessionSvc      session.Service
	AuthSvc         auth.Service
	InterestSvc     interest.Service
	NotificationSvc notification.Service
	AvatarSvc       avatar.Service
	AccountSvc      account.Service
	RoleEval        role.Evaluator
	JWTProvider     *jwtinfra.Provider
	Metrics         *appmiddleware.Metrics
	MetricsHandler  nethttp.Handler
}
