package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

// AuthHandler implements the PIN lock. The PIN hash lives in settings; when
// none is set the app is unlocked and SetPIN is open, otherwise changing the
// PIN requires the current one.
type AuthHandler struct {
	settingsRepo  repository.SettingsRepo
	jwtSecret     string
	tokenDuration time.Duration
}

func NewAuthHandler(sr repository.SettingsRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{settingsRepo: sr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type setPINRequest struct {
	PIN        string `json:"pin"`
	CurrentPIN string `json:"currentPin,omitempty"`
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

type authResponse struct {
	Token string `json:"token"`
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

func (h *AuthHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req setPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !validPIN(req.PIN) {
		http.Error(w, "PIN must be 4 to 8 digits", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	settings, err := h.settingsRepo.GetSettings(ctx)
	if err != nil {
		http.Error(w, "failed to read settings", http.StatusInternalServerError)
		return
	}

	if settings.PINHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(settings.PINHash), []byte(req.CurrentPIN)) != nil {
			http.Error(w, "current PIN is incorrect", http.StatusUnauthorized)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash PIN", http.StatusInternalServerError)
		return
	}

	hashStr := string(hash)
	if _, err := h.settingsRepo.UpdateSettings(ctx, models.SettingsPatch{PINHash: &hashStr}); err != nil {
		http.Error(w, "failed to save PIN", http.StatusInternalServerError)
		return
	}

	h.issueToken(w)
}

func (h *AuthHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	settings, err := h.settingsRepo.GetSettings(r.Context())
	if err != nil {
		http.Error(w, "failed to read settings", http.StatusInternalServerError)
		return
	}

	// No PIN configured: the app is unlocked and any unlock attempt succeeds.
	if settings.PINHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(settings.PINHash), []byte(req.PIN)) != nil {
			http.Error(w, "incorrect PIN", http.StatusUnauthorized)
			return
		}
	}

	h.issueToken(w)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "technician",
		"exp": time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		http.Error(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusOK)
}
