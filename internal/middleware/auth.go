// Package middleware содержит HTTP middleware сайта «Золотой Улей».
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const visitorIDKey contextKey = "visitorID"

const (
	visitorCookieName = "visitor_token"
	visitorCookieTTL  = 365 * 24 * time.Hour
)

// VisitorMiddleware привязывает запрос к посетителю по подписанному cookie.
// Если cookie нет или подпись не сходится, выдаётся новый идентификатор.
type VisitorMiddleware struct {
	secretKey []byte
	newID     func() string
}

// NewVisitorMiddleware создаёт middleware с указанным секретным ключом.
// При пустом ключе генерируется случайный, и cookie перестают быть действительными после перезапуска.
func NewVisitorMiddleware(secret string) *VisitorMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &VisitorMiddleware{
		secretKey: key,
		newID:     uuid.NewString,
	}
}

// Middleware добавляет идентификатор посетителя в контекст запроса.
func (v *VisitorMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitorID string
		if cookie, err := r.Cookie(visitorCookieName); err == nil {
			if id, ok := v.parseCookie(cookie.Value); ok {
				visitorID = id
			}
		}

		if visitorID == "" {
			visitorID = v.newID()
			v.SetVisitorCookie(w, visitorID)
		}

		ctx := context.WithValue(r.Context(), visitorIDKey, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetVisitorCookie устанавливает cookie посетителя.
func (v *VisitorMiddleware) SetVisitorCookie(w http.ResponseWriter, visitorID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    v.sign(visitorID),
		Path:     "/",
		Expires:  time.Now().Add(visitorCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (v *VisitorMiddleware) sign(visitorID string) string {
	return visitorID + "." + v.signature(visitorID)
}

func (v *VisitorMiddleware) signature(visitorID string) string {
	mac := hmac.New(sha256.New, v.secretKey)
	mac.Write([]byte(visitorID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (v *VisitorMiddleware) parseCookie(value string) (string, bool) {
	visitorID, signature, found := strings.Cut(value, ".")
	if !found {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(v.signature(visitorID))) {
		return "", false
	}

	if _, err := uuid.Parse(visitorID); err != nil {
		return "", false
	}

	return visitorID, true
}

// VisitorIDFromContext извлекает идентификатор посетителя из контекста запроса.
func VisitorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorIDKey).(string)
	return id, ok && id != ""
}
