package handler

import (
	"net/http"
	"strings"

	"github.com/peg96/FinanceBinder/internal/apperr"
	"github.com/peg96/FinanceBinder/internal/models"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler owns the single credential row: login, logout and password
// change all go through it.
type AuthHandler struct {
	DB         *gorm.DB
	Sessions   *session.Store
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, store *session.Store, bcryptCost int) *AuthHandler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{DB: db, Sessions: store, BcryptCost: bcryptCost}
}

// currentUser fetches the one user row seeded at startup.
func (h *AuthHandler) currentUser() (*models.User, error) {
	var user models.User
	if err := h.DB.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// authenticate compares password against the stored bcrypt hash.
func (h *AuthHandler) authenticate(password string) error {
	user, err := h.currentUser()
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return apperr.NewAuth("Password non valida")
	}
	return nil
}

// Index redirects to the dashboard when logged in, to the login page
// otherwise.
func (h *AuthHandler) Index(c *gin.Context) {
	sess := session.Current(c)
	if sess != nil && sess.Authenticated {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form with any pending flashes.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":   "FinanceBinder - Login",
		"flashes": h.Sessions.PopFlashes(session.Current(c)),
	})
}

// Login authenticates the shared password and marks the session.
func (h *AuthHandler) Login(c *gin.Context) {
	password := c.PostForm("password")

	if err := h.authenticate(password); err != nil {
		if apperr.IsAuth(err) {
			flashRedirect(c, h.Sessions, "danger", err.Error(), "/login")
			return
		}
		respondError(c, h.Sessions, err, "/login")
		return
	}

	sess := session.Current(c)
	if err := h.Sessions.MarkAuthenticated(sess); err != nil {
		respondError(c, h.Sessions, err, "/login")
		return
	}
	flashRedirect(c, h.Sessions, "success", "Login effettuato con successo", "/dashboard")
}

// Logout clears all session state unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Destroy(c, session.Current(c))

	// fresh session so the goodbye flash survives the redirect
	if sess, err := h.Sessions.Create(c); err == nil {
		c.Set(session.ContextKey, sess)
		_ = h.Sessions.AddFlash(sess, "info", "Logout effettuato")
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ChangePassword replaces the stored hash after verifying the current
// password. The old hash is discarded irreversibly; existing sessions stay
// valid.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	current := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	if err := h.changePassword(current, newPassword, confirm); err != nil {
		respondError(c, h.Sessions, err, "/dashboard")
		return
	}
	flashRedirect(c, h.Sessions, "success", "Password cambiata con successo", "/dashboard")
}

func (h *AuthHandler) changePassword(current, newPassword, confirm string) error {
	if strings.TrimSpace(current) == "" || strings.TrimSpace(newPassword) == "" || strings.TrimSpace(confirm) == "" {
		return apperr.NewValidation("Tutti i campi sono obbligatori")
	}
	if newPassword != confirm {
		return apperr.NewValidation("Le nuove password non corrispondono")
	}

	user, err := h.currentUser()
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperr.NewAuth("Password attuale non corretta")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), h.BcryptCost)
	if err != nil {
		return err
	}
	return h.DB.Model(user).Update("password_hash", string(hash)).Error
}
