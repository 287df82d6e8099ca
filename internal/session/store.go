package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/peg96/FinanceBinder/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// CookieName carries the signed session id.
	CookieName = "fb_session"
	// ContextKey is where the middleware stores the current session.
	ContextKey = "currentSession"
)

// Flash is a one-shot user-facing notification shown on the next rendered
// page. Category matches the original styling hooks: success, danger, info.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Store manages server-side sessions backed by the sessions table. The
// cookie only carries "id.signature"; all state lives in the row.
type Store struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewStore(db *gorm.DB, secret string, ttlHours int) *Store {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Store{
		db:     db,
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

func (s *Store) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Load returns the session referenced by the request cookie, or nil if the
// cookie is absent, tampered with, expired, or references no row.
func (s *Store) Load(c *gin.Context) *models.Session {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return nil
	}
	id, sig, ok := strings.Cut(cookie, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return nil
	}

	var sess models.Session
	if err := s.db.First(&sess, "id = ?", id).Error; err != nil {
		return nil
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.db.Delete(&sess).Error
		return nil
	}
	return &sess
}

// Create inserts a fresh unauthenticated session and sets its cookie.
func (s *Store) Create(c *gin.Context) (*models.Session, error) {
	sess := models.Session{
		ID:        uuid.New().String(),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.setCookie(c, sess.ID)
	return &sess, nil
}

func (s *Store) setCookie(c *gin.Context, id string) {
	value := id + "." + s.sign(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, int(s.ttl.Seconds()), "/", "", false, true)
}

// MarkAuthenticated flips the session's authenticated flag after login.
func (s *Store) MarkAuthenticated(sess *models.Session) error {
	sess.Authenticated = true
	return s.db.Model(sess).Update("authenticated", true).Error
}

// Destroy deletes the session row and expires the cookie.
func (s *Store) Destroy(c *gin.Context, sess *models.Session) {
	if sess != nil {
		_ = s.db.Delete(&models.Session{}, "id = ?", sess.ID).Error
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// AddFlash appends a one-shot message to the session's queue.
func (s *Store) AddFlash(sess *models.Session, category, message string) error {
	var flashes []Flash
	if sess.Flashes != "" {
		if err := json.Unmarshal([]byte(sess.Flashes), &flashes); err != nil {
			flashes = nil
		}
	}
	flashes = append(flashes, Flash{Category: category, Message: message})

	raw, err := json.Marshal(flashes)
	if err != nil {
		return fmt.Errorf("marshal flashes: %w", err)
	}
	sess.Flashes = string(raw)
	return s.db.Model(sess).Update("flashes", sess.Flashes).Error
}

// PopFlashes drains and returns the pending flash messages.
func (s *Store) PopFlashes(sess *models.Session) []Flash {
	if sess == nil || sess.Flashes == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(sess.Flashes), &flashes); err != nil {
		flashes = nil
	}
	sess.Flashes = ""
	_ = s.db.Model(sess).Update("flashes", "").Error
	return flashes
}

// Current returns the session placed in the context by the middleware.
func Current(c *gin.Context) *models.Session {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

// CleanExpired removes expired session rows. Called opportunistically at
// startup; there is no background sweeper.
func (s *Store) CleanExpired() error {
	err := s.db.Delete(&models.Session{}, "expires_at < ?", time.Now()).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("clean sessions: %w", err)
	}
	return nil
}
