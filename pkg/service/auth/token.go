package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is the single error for every token failure: bad
	// signature, wrong algorithm, expired, missing expiry or malformed.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrInvalidTokenFormat is returned when a valid token carries a subject
	// that is not a user id.
	ErrInvalidTokenFormat = errors.New("invalid token format")
)

// Claims is the payload of an access token; Subject is the decimal user id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService builds a TokenService from the jwt configuration.
func NewTokenService(cfg *config.Jwt) (*TokenService, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		method: method,
		expiry: expiry,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// Issue signs a token for userID valid for the configured expiry.
func (s *TokenService) Issue(userID uint) (string, error) {
	return s.IssueWithTTL(userID, s.expiry)
}

// IssueWithTTL signs a token for userID valid for ttl.
func (s *TokenService) IssueWithTTL(userID uint, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// KeyFunc resolves the signing key, rejecting any algorithm other than the
// configured one. It is shared with the HTTP middleware.
func (s *TokenService) KeyFunc(t *jwt.Token) (any, error) {
	if t.Method == nil || t.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}

// ClaimsFromToken applies the expiry and issuer policy to a token that was
// already parsed, e.g. by the fiber jwt middleware.
func (s *TokenService) ClaimsFromToken(token *jwt.Token) (*Claims, error) {
	if token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if !claims.ExpiresAt.After(s.now()) {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID decodes the subject claim.
func (c *Claims) UserID() (uint, error) {
	if c.Subject == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(c.Subject, 10, 0)
	if err != nil || id == 0 {
		return 0, ErrInvalidTokenFormat
	}
	return uint(id), nil
}
