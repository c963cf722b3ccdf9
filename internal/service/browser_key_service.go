package service

import (
	"time"

	"lawpro-be/internal/dto"
	"lawpro-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IBrowserKeyService interface {
	// Issue returns a token for a new browser key, or re-signs existing when
	// it is a valid token for this server.
	Issue(existing string) (*dto.BrowserKeyResponse, error)
}

type browserKeyService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewBrowserKeyService(secret string, ttl time.Duration) IBrowserKeyService {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &browserKeyService{secret: secret, ttl: ttl, now: time.Now}
}

func (s *browserKeyService) Issue(existing string) (*dto.BrowserKeyResponse, error) {
	key := ""
	if existing != "" {
		if k, err := serverutils.ParseBrowserKey(existing, s.secret); err == nil {
			key = k
		}
	}
	if key == "" {
		key = uuid.NewString()
	}

	expiresAt := s.now().Add(s.ttl)
	claims := jwt.MapClaims{
		serverutils.BrowserKeyClaim: key,
		"iat":                       s.now().Unix(),
		"exp":                       expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.BrowserKeyResponse{
		BrowserKey: key,
		Token:      signedToken,
		ExpiresAt:  expiresAt,
	}, nil
}
