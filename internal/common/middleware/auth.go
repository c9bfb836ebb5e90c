package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/respond"
)

const walletContextKey = "wallet"

// Claims is the payload of the bearer token issued after wallet verification.
type Claims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// RequireToken authenticates requests by the bearer token issued from
// /api/verify. The verified wallet address lands in the gin context.
func RequireToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "authorization header required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "authorization header format must be Bearer <token>"))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "token expired"))
				return
			}
			respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "invalid token"))
			return
		}
		if !token.Valid || claims.Wallet == "" {
			respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "invalid token"))
			return
		}

		c.Set(walletContextKey, strings.ToLower(claims.Wallet))
		c.Next()
	}
}

// WalletFromContext returns the wallet the bearer token was issued to.
func WalletFromContext(c *gin.Context) (string, bool) {
	wallet := c.GetString(walletContextKey)
	return wallet, wallet != ""
}
