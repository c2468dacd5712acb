package authn

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenLifetime アクセストークンの有効期間
const DefaultTokenLifetime = 30 * time.Minute

var (
	// ErrInvalidToken トークンが無効または期限切れです
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongPassword パスワードが一致しません
	ErrWrongPassword = errors.New("wrong email or password")
)

// Service ベアラートークンの発行・検証とパスワードのハッシュ化を行います
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// NewService Serviceを生成します。lifetimeが0以下の場合は既定値を使用します
func NewService(secret string, lifetime time.Duration) *Service {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// HashPassword パスワードのbcryptハッシュを生成します
func (s *Service) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword パスワードをハッシュと照合します
//
// 一致しない場合、ErrWrongPasswordを返します。
func (s *Service) VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IssueToken 指定したユーザーのアクセストークンを発行します
func (s *Service) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken トークンを検証し、ユーザーIDを取り出します
//
// 署名が不正な場合や期限切れの場合、ErrInvalidTokenを返します。
func (s *Service) VerifyToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// Lifetime トークンの有効期間
func (s *Service) Lifetime() time.Duration {
	return s.lifetime
}
