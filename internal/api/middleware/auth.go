package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgUnauthorized  = "Not authorized, no token"
	msgInvalidToken  = "Not authorized, token failed"
	msgAdminRequired = "Not authorized as an admin"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errNoSubject    = errors.New("token has no user id")
)

// Auth identity provider
type Auth struct {
	mode   string
	secret []byte
	logger Logger
}

// NewAuth mode "header" доверяет X-User-ID/X-User-Role от gateway, "jwt" проверяет HS256 Bearer токен
func NewAuth(mode, secret string, logger Logger) *Auth {
	return &Auth{mode: mode, secret: []byte(secret), logger: logger}
}

// Middleware требует аутентифицированного пользователя
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			actor domain.Actor
			err   error
		)
		if a.mode == "jwt" {
			actor, err = a.fromToken(r)
		} else {
			actor, err = fromHeaders(r)
		}
		if err != nil {
			a.logger.Warn("Auth: %s %s rejected: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errMissingToken) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func fromHeaders(r *http.Request) (domain.Actor, error) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		return domain.Actor{}, errMissingToken
	}
	return domain.Actor{
		UserID:     userID,
		Capability: domain.ResolveCapability(r.Header.Get(HeaderUserRole)),
	}, nil
}

// claims userId предпочтительнее sub
type claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (a *Auth) fromToken(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Actor{}, errMissingToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(parts[1], &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Actor{}, err
	}

	userID := c.UserID
	if userID == "" {
		userID = c.Subject
	}
	if userID == "" {
		return domain.Actor{}, errNoSubject
	}

	return domain.Actor{UserID: userID, Capability: domain.ResolveCapability(c.Role)}, nil
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		if !actor.Capability.IsAdministrator() {
			handlers.RespondForbidden(w, msgAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
