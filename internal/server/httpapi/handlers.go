// Package httpapi exposes the auth service over HTTP: session routes,
// the request-gate middleware, and JSend response envelopes.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/logging"
	"github.com/webident/authcore/internal/server/services"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Handler bundles the services the session routes call.
type Handler struct {
	auth   *services.AuthService
	reset  *services.ResetService
	logger logging.Logger
}

func NewHandler(auth *services.AuthService, reset *services.ResetService, logger logging.Logger) *Handler {
	return &Handler{auth: auth, reset: reset, logger: logger}
}

// normalizeEmail lowercases and trims the address; validation of shape and
// length happens before the services see it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

func validPassword(pw string) bool {
	return len(pw) >= 8 && len(pw) <= 100
}

func validName(name string) bool {
	return name != "" && len(name) <= 50
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	req.Email = normalizeEmail(req.Email)
	if !validEmail(req.Email) || !validPassword(req.Password) {
		writeFail(w, http.StatusBadRequest, "Email must be valid and password must be 8-100 characters.")
		return
	}

	bundle, err := h.auth.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeFail(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		h.logger.Error(r.Context(), "login failed", "reason", "internal")
		writeError(w, "Issue logging into your account. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    bundle.AuthToken,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:  common.UserDataCookieName,
		Value: bundle.UserDataToken,
		Path:  "/",
	})
	writeSuccess(w, "Successfully logged in.")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(common.AuthCookieName)
	if err != nil || c.Value == "" {
		// Not a security-sensitive case: there is simply nothing to log out of.
		writeFail(w, http.StatusNotFound, "Could not logout, there is no login session.")
		return
	}

	if err := h.auth.Logout(r.Context(), c.Value); err != nil {
		writeError(w, "Issue logging out. Please try again later.")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: common.AuthCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: common.UserDataCookieName, Value: "", Path: "/", MaxAge: -1})
	writeSuccess(w, "Successfully logged out.")
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	req.Email = normalizeEmail(req.Email)
	switch {
	case !validEmail(req.Email):
		writeFail(w, http.StatusBadRequest, "Must be an email format.")
		return
	case !validPassword(req.Password):
		writeFail(w, http.StatusBadRequest, "Password must be at minimum 8 characters and at maximum 100 characters.")
		return
	case !validName(req.FirstName) || !validName(req.LastName):
		writeFail(w, http.StatusBadRequest, "First and last name are required and cannot be longer than 50 characters.")
		return
	}

	_, err := h.auth.Signup(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			writeFail(w, http.StatusBadRequest,
				fmt.Sprintf("An account already exists with the email %s, please create an account using a different email.", req.Email))
			return
		}
		writeError(w, "Issue inserting your account. Please try again.")
		return
	}
	writeSuccess(w, "Successfully created account!")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	req.Email = normalizeEmail(req.Email)
	if !validEmail(req.Email) {
		writeFail(w, http.StatusBadRequest, "Must be an email format.")
		return
	}

	// The body is identical whether or not the account exists.
	message := fmt.Sprintf("If an account exists with the email %s, then you will receive an email with a link to reset your password.", req.Email)

	if err := h.reset.Request(r.Context(), req.Email); err != nil {
		writeError(w, "Issue sending the forgot password email. Please try again.")
		return
	}
	writeSuccess(w, message)
}

type resetPasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	switch {
	case req.UserID == "":
		writeFail(w, http.StatusBadRequest, "UserID is required.")
		return
	case req.Token == "":
		writeFail(w, http.StatusBadRequest, "Token is required.")
		return
	case !validPassword(req.Password):
		writeFail(w, http.StatusBadRequest, "Password must be at minimum 8 characters and at maximum 100 characters.")
		return
	}

	if err := h.reset.Reset(r.Context(), req.UserID, req.Token, req.Password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeFail(w, http.StatusUnauthorized, "Invalid reset password link. Please request a new one.")
			return
		}
		writeError(w, "Issue resetting password. Please try again.")
		return
	}
	writeSuccess(w, "Successfully updated password!")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "OK")
}
