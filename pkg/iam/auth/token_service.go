package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidToken = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeMissingToken = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing authorization header")
)

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

// Claims carried by access tokens
type Claims struct {
	Role iam.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

// NewJWTService creates a token service
func NewJWTService(secret string, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(issuer),
		),
	}
}

// GenerateAccessToken signs a token for the subject
func (s *TokenService) GenerateAccessToken(subject kernel.UserID, role iam.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return token, nil
}

// ValidateAccessToken verifies the token and resolves the caller identity
func (s *TokenService) ValidateAccessToken(tokenString string) (*iam.Identity, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken()
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken().WithCause(fmt.Errorf("incomplete claims: sub=%q role=%q", claims.Subject, claims.Role))
	}
	if !kernel.IsUUID(claims.Subject) {
		return nil, ErrInvalidToken().WithCause(fmt.Errorf("subject %q is not a user id", claims.Subject))
	}

	return &iam.Identity{
		SubjectID: kernel.NewUserID(claims.Subject),
		Role:      claims.Role,
	}, nil
}
