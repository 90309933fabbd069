package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TWRT/task-board/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. The subject is the user id.
type Claims struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider validates HS256 bearer tokens from the Authorization header.
type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret []byte) *JWTProvider {
	return &JWTProvider{secret: secret}
}

func (p *JWTProvider) IsAuthenticated(r *http.Request) bool {
	_, err := p.claims(r)
	return err == nil
}

func (p *JWTProvider) GetUser(r *http.Request) (*models.User, error) {
	claims, err := p.claims(r)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:         claims.Subject,
		Email:      claims.Email,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}

func (p *JWTProvider) claims(r *http.Request) (*Claims, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: authorization header required", ErrUnauthenticated)
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", ErrUnauthenticated)
	}
	return token, nil
}

// IssueToken signs a token for user that expires after ttl.
func IssueToken(secret []byte, user models.User, ttl time.Duration) (string, error) {
	if user.ID == "" {
		return "", errors.New("issue token: user id is required")
	}

	now := time.Now()
	claims := &Claims{
		Email:      user.Email,
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
