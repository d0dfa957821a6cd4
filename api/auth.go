package api

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	googleauth "factorlab/pkg/google-auth"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const userAccountIDKey = "userAccountID"

type GoogleAuthClient interface {
	GetUserDetails(ctx context.Context, accessToken string) (*googleauth.GetUserDetailsResponse, error)
}

type SupabaseJWT struct {
	Aal                   string                 `json:"aal"`
	AuthenticationMethods []AuthenticationMethod `json:"amr"`
	AppMetadata           AppMetadata            `json:"app_metadata"`
	Audience              string                 `json:"aud"`
	Email                 *string                `json:"email"`
	ExpiresAt             int64                  `json:"exp"`
	IssuedAt              int64                  `json:"iat"`
	IsAnonymous           bool                   `json:"is_anonymous"`
	Issuer                string                 `json:"iss"`
	PhoneNumber           *string                `json:"phone"`
	Role                  string                 `json:"role"`
	SessionID             string                 `json:"session_id"`
	Subject               string                 `json:"sub"`
	UserMetadata          UserMetadata           `json:"user_metadata"`
	Name                  string                 `json:"name"`
}

type AuthenticationMethod struct {
	Method    string `json:"method"`
	Timestamp int64  `json:"timestamp"`
}

type AppMetadata struct {
	Provider  string   `json:"provider"`
	Providers []string `json:"providers"`
}

type UserMetadata struct {
	EmailVerified bool   `json:"email_verified"`
	PhoneVerified bool   `json:"phone_verified"`
	Subject       string `json:"sub"`
}

type jwksResponse struct {
	Keys []jwkKey `json:"keys"`
}

// Minimal subset of JWK fields needed for ES256 verification.
type jwkKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	X   string `json:"x"`
	Y   string `json:"y"`
	Alg string `json:"alg"`
}

var (
	jwksCacheMu sync.RWMutex
	// cache key: jwksURL + "|" + kid
	jwksKeyCache = map[string]*ecdsa.PublicKey{}

	jwksHttpClient = &http.Client{Timeout: 10 * time.Second}
)

func base64URLDecodeToBigInt(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

func getES256PublicKey(ctx context.Context, jwksURL string, kid string) (*ecdsa.PublicKey, error) {
	cacheKey := jwksURL + "|" + kid
	jwksCacheMu.RLock()
	if k, ok := jwksKeyCache[cacheKey]; ok {
		jwksCacheMu.RUnlock()
		return k, nil
	}
	jwksCacheMu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := jwksHttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch JWKS: http %d", resp.StatusCode)
	}

	var jwks jwksResponse
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	for _, k := range jwks.Keys {
		if k.Kid != kid {
			continue
		}
		if k.Kty != "EC" || k.Crv != "P-256" {
			return nil, fmt.Errorf("unsupported JWK key type/curve: kty=%s crv=%s", k.Kty, k.Crv)
		}
		x, err := base64URLDecodeToBigInt(k.X)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK x: %w", err)
		}
		y, err := base64URLDecodeToBigInt(k.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JWK y: %w", err)
		}
		pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}

		jwksCacheMu.Lock()
		jwksKeyCache[cacheKey] = pub
		jwksCacheMu.Unlock()

		return pub, nil
	}

	return nil, fmt.Errorf("kid not found in JWKS: %s", kid)
}

func decodeJWTHeaderAndClaimsUnverified(jwtStr string) (map[string]any, *SupabaseJWT, error) {
	parts := strings.Split(jwtStr, ".")
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("invalid JWT format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT header: %w", err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT header: %w", err)
	}

	claimsBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT claims: %w", err)
	}
	var parsedJWT SupabaseJWT
	if err := json.Unmarshal(claimsBytes, &parsedJWT); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}

	return header, &parsedJWT, nil
}

// parseSupabaseJWT verifies HS256 tokens with secret, then falls back to
// ES256 keys published under supabaseUrl. An empty supabaseUrl disables the
// fallback so an unverified issuer is never trusted.
func parseSupabaseJWT(ctx context.Context, jwtStr string, secret string, supabaseUrl string) (*SupabaseJWT, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if secret == "" {
			return nil, fmt.Errorf("no jwt secret configured")
		}
		return []byte(secret), nil
	})

	if err != nil {
		header, unverifiedClaims, decodeErr := decodeJWTHeaderAndClaimsUnverified(jwtStr)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		alg, _ := header["alg"].(string)
		if alg != "ES256" || supabaseUrl == "" {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		kid, _ := header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("failed to parse token: missing kid")
		}
		issuer := strings.TrimRight(unverifiedClaims.Issuer, "/")
		if !strings.HasPrefix(issuer, strings.TrimRight(supabaseUrl, "/")) {
			return nil, fmt.Errorf("failed to parse token: unexpected issuer %q", unverifiedClaims.Issuer)
		}

		jwksURL := issuer + "/.well-known/jwks.json"
		esToken, esErr := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return getES256PublicKey(ctx, jwksURL, kid)
		})
		if esErr != nil {
			return nil, fmt.Errorf("failed to parse token: %w", esErr)
		}
		token = esToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("error marshalling claims: %w", err)
	}

	var parsedJWT SupabaseJWT
	if err := json.Unmarshal(claimsJSON, &parsedJWT); err != nil {
		return nil, fmt.Errorf("error unmarshalling into JWT struct: %w", err)
	}

	if time.Now().UTC().Unix() > parsedJWT.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}
	if parsedJWT.Subject == "" {
		return nil, fmt.Errorf("jwt is missing sub")
	}

	return &parsedJWT, nil
}

func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

// identityFromToken turns a bearer token into the account fields the
// provider vouches for. Supabase tokens are JWTs; anything else is treated
// as a Google OAuth access token.
func (m ApiHandler) identityFromToken(ctx context.Context, token string) (*model.UserAccount, error) {
	if looksLikeJWT(token) {
		claims, err := parseSupabaseJWT(ctx, token, m.JwtSecret, m.SupabaseUrl)
		if err != nil {
			return nil, err
		}
		return &model.UserAccount{
			Provider:   repository.UserAccountProvider_Supabase,
			ProviderID: claims.Subject,
			Email:      claims.Email,
		}, nil
	}

	if m.GoogleAuthClient == nil {
		return nil, fmt.Errorf("google sign-in is not configured")
	}
	details, err := m.GoogleAuthClient.GetUserDetails(ctx, token)
	if err != nil {
		return nil, err
	}
	out := &model.UserAccount{
		Provider:   repository.UserAccountProvider_Google,
		ProviderID: details.ID,
	}
	if details.Email != "" {
		out.Email = strPtr(details.Email)
	}
	if details.FirstName != "" {
		out.FirstName = strPtr(details.FirstName)
	}
	if details.LastName != "" {
		out.LastName = strPtr(details.LastName)
	}
	return out, nil
}

// authMiddleware resolves the bearer token to a user account. Requests
// without a token continue anonymously; a bad token is rejected.
func (m ApiHandler) authMiddleware(c *gin.Context) {
	token := strings.TrimSpace(c.GetHeader("Authorization"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer"))
	if token == "" {
		c.Next()
		return
	}
	ctx := c.Request.Context()

	identity, err := m.identityFromToken(ctx, token)
	if err != nil {
		returnErrorJson(fmt.Errorf("invalid bearer token: %w (%s)", domain.ErrUnauthenticated, err.Error()), c)
		return
	}

	account, err := m.UserAccountRepository.GetOrCreate(ctx, m.Db, *identity)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to resolve user account: %w", err), c)
		return
	}

	c.Set(userAccountIDKey, account.UserAccountID)
	log := logger.FromContext(ctx).With("userAccountId", account.UserAccountID.String())
	c.Request = c.Request.WithContext(logger.NewContext(ctx, log))

	c.Next()
}
