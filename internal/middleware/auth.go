// Package middleware holds the gin middleware for JWT authentication and
// capability checks. A token is resolved into an actor (id, name, role) once;
// route guards test capabilities against the role, never role strings.
package middleware

import (
	"net/http"
	"strings"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ctxUserID   = "userId"
	ctxUserName = "userName"
	ctxRole     = "userRole"
)

// Auth rejects requests without a valid bearer token.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, secret)
		if err != nil {
			abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized, err.Error())
			return
		}
		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves an actor when a token is present but lets anonymous
// requests through. Guest carts depend on it.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := parseToken(c, secret); err == nil {
				setActor(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAnyCapability passes when the actor's role holds at least one of the
// listed capabilities.
func RequireAnyCapability(caps ...models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString(ctxRole))
		for _, cap := range caps {
			if role.Can(cap) {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, apperr.CodeForbidden, "insufficient permissions")
	}
}

// ActorFrom reads the resolved actor. The bool is false on anonymous
// requests.
func ActorFrom(c *gin.Context) (service.Actor, bool) {
	idHex := c.GetString(ctxUserID)
	if idHex == "" {
		return service.Actor{}, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID: id,
		Name:   c.GetString(ctxUserName),
		Role:   models.Role(c.GetString(ctxRole)),
	}, true
}

func parseToken(c *gin.Context, secret []byte) (*service.TokenClaims, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errMissingToken
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := &service.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadSigningMethod
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func setActor(c *gin.Context, claims *service.TokenClaims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserName, claims.Name)
	c.Set(ctxRole, claims.Role)
}

func abort(c *gin.Context, status int, code apperr.Code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

var (
	errMissingToken     = apperr.New(apperr.CodeUnauthorized, "missing bearer token")
	errInvalidToken     = apperr.New(apperr.CodeUnauthorized, "invalid token")
	errBadSigningMethod = apperr.New(apperr.CodeUnauthorized, "unexpected signing method")
)
