package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/helpers"
	"github.com/gregsantos/ip-derivative-agent/internal/logger"
)

// Context keys for storing values
const (
	CallerAddressKey = "callerAddress"
	AuthTypeKey      = "authType"
	RoleKey          = "callerRole"
)

// TokenWallet represents a wallet entry in the wallet provider's ID token
type TokenWallet struct {
	PublicKey string `json:"public_key"`
	Type      string `json:"type"`
	Curve     string `json:"curve,omitempty"`
	Address   string `json:"address,omitempty"`
}

// WalletClaims represents the expected structure of the wallet JWT claims
type WalletClaims struct {
	jwt.RegisteredClaims
	Email   string        `json:"email,omitempty"`
	Name    string        `json:"name,omitempty"`
	Wallets []TokenWallet `json:"wallets,omitempty"`
}

// AuthClient authenticates HTTP requests. Requests carrying the owner API key
// act as the configured owner address; bearer tokens act as the wallet
// address embedded in their claims.
type AuthClient struct {
	JWKSURL         string
	Issuer          string
	Audience        string
	owner           common.Address
	ownerAPIKeyHash string
	jwks            *keyfunc.JWKS
}

func NewAuthClient(owner common.Address) *AuthClient {
	client := &AuthClient{
		JWKSURL:         os.Getenv("JWKS_URL"),
		Issuer:          os.Getenv("JWT_ISSUER"),
		Audience:        os.Getenv("JWT_AUDIENCE"),
		owner:           owner,
		ownerAPIKeyHash: os.Getenv("OWNER_API_KEY_HASH"),
	}

	// Initialize JWKS
	if err := client.initializeJWKS(); err != nil {
		logger.Log.Error("Failed to initialize JWKS", zap.Error(err))
	}

	return client
}

func (ac *AuthClient) initializeJWKS() error {
	if ac.JWKSURL == "" {
		return fmt.Errorf("JWKS_URL not set")
	}

	jwks, err := keyfunc.Get(ac.JWKSURL, keyfunc.Options{
		RefreshInterval:  time.Hour,
		RefreshRateLimit: time.Minute,
		RefreshTimeout:   time.Second * 10,
		RefreshErrorHandler: func(err error) {
			logger.Log.Error("JWKS refresh error", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create JWKS: %w", err)
	}

	ac.jwks = jwks

	logger.Log.Info("JWKS initialized successfully",
		zap.String("jwks_url", ac.JWKSURL),
		zap.String("issuer", ac.Issuer),
	)

	return nil
}

// EnsureValidAPIKeyOrToken is a middleware that checks for either the owner
// API key or a wallet JWT. It first checks the X-API-Key header, then falls
// back to bearer token validation, and records the resolved caller address on
// the request context.
func (ac *AuthClient) EnsureValidAPIKeyOrToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		// First check for API key in header
		apiKey := c.GetHeader("X-API-Key")
		if apiKey != "" {
			if err := ac.validateOwnerAPIKey(apiKey); err != nil {
				logger.Log.Debug("API key validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				c.Abort()
				return
			}

			c.Set(CallerAddressKey, ac.owner)
			c.Set(AuthTypeKey, constants.AuthTypeAPIKey)
			c.Set(RoleKey, constants.RoleOwner)
			c.Next()
			return
		}

		// If no API key, check for JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authentication provided"})
			c.Abort()
			return
		}

		caller, err := ac.validateWalletToken(authHeader)
		if err != nil {
			logger.Log.Debug("JWT token validation failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(CallerAddressKey, caller)
		c.Set(AuthTypeKey, constants.AuthTypeJWT)
		c.Set(RoleKey, constants.RoleCaller)
		c.Next()
	}
}

// RequireOwnerKey is a middleware that restricts a route to requests
// authenticated with the owner API key.
func (ac *AuthClient) RequireOwnerKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != constants.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Owner API key required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (ac *AuthClient) validateOwnerAPIKey(apiKey string) error {
	if ac.ownerAPIKeyHash == "" {
		return fmt.Errorf("API key authentication not configured")
	}
	if err := helpers.CompareAPIKeyHash(apiKey, ac.ownerAPIKeyHash); err != nil {
		return fmt.Errorf("invalid API key")
	}
	return nil
}

// validateWalletToken validates the bearer token and returns the caller's
// wallet address.
func (ac *AuthClient) validateWalletToken(authHeader string) (common.Address, error) {
	// Remove "Bearer " prefix
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return common.Address{}, ErrInvalidToken
	}

	if ac.jwks == nil {
		return common.Address{}, fmt.Errorf("JWKS not initialized")
	}

	// Parse and validate the token using JWKS
	token, err := jwt.ParseWithClaims(tokenString, &WalletClaims{}, ac.jwks.Keyfunc)
	if err != nil {
		logger.Log.Debug("Token parsing failed", zap.Error(err))
		return common.Address{}, ErrInvalidToken
	}
	if !token.Valid {
		return common.Address{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*WalletClaims)
	if !ok {
		return common.Address{}, ErrInvalidToken
	}
	if err := ac.validateClaims(claims); err != nil {
		return common.Address{}, err
	}

	return callerFromClaims(claims)
}

func (ac *AuthClient) validateClaims(claims *WalletClaims) error {
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return fmt.Errorf("token is expired")
	}

	// Validate issuer if configured
	if ac.Issuer != "" && claims.Issuer != ac.Issuer {
		logger.Log.Debug("Issuer mismatch",
			zap.String("expected", ac.Issuer),
			zap.String("actual", claims.Issuer),
		)
		return fmt.Errorf("invalid issuer")
	}

	// Validate audience if configured
	if ac.Audience != "" {
		audienceValid := false
		for _, aud := range claims.Audience {
			if aud == ac.Audience {
				audienceValid = true
				break
			}
		}
		if !audienceValid {
			logger.Log.Debug("Audience mismatch",
				zap.String("expected", ac.Audience),
				zap.Strings("actual", claims.Audience),
			)
			return fmt.Errorf("invalid audience")
		}
	}

	return nil
}

// callerFromClaims picks the first EVM wallet address in the claims. The
// subject claim serves as a fallback when it is itself a hex address.
func callerFromClaims(claims *WalletClaims) (common.Address, error) {
	for _, wallet := range claims.Wallets {
		if wallet.Address != "" && common.IsHexAddress(wallet.Address) {
			return common.HexToAddress(wallet.Address), nil
		}
	}
	if common.IsHexAddress(claims.Subject) {
		return common.HexToAddress(claims.Subject), nil
	}
	return common.Address{}, ErrNoWalletAddress
}

// CallerAddress reads the authenticated caller address from the request
// context.
func CallerAddress(c *gin.Context) (common.Address, bool) {
	value, exists := c.Get(CallerAddressKey)
	if !exists {
		return common.Address{}, false
	}
	caller, ok := value.(common.Address)
	return caller, ok
}
