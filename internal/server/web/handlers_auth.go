package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"motoreg/internal/common"
	"motoreg/internal/server/sessions"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// credentialsFromRequest accepts either a JSON body or a login form.
func credentialsFromRequest(r *http.Request) (credentials, error) {
	var c credentials
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return credentials{}, err
		}
		return c, nil
	}
	if err := r.ParseForm(); err != nil {
		return credentials{}, err
	}
	c.Username = r.PostFormValue("username")
	c.Password = r.PostFormValue("password")
	return c, nil
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "login.html", loginPage{})
}

// handleLogin verifies credentials and issues the access token. API
// callers get the token itself; browsers get it parked in the session
// cache behind an opaque cookie, so the token never reaches the client.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	creds, err := credentialsFromRequest(r)
	if err != nil {
		if f.Machine() {
			writeError(w, f, http.StatusBadRequest, "Invalid request body")
			return
		}
		s.renderPage(w, http.StatusBadRequest, "login.html", loginPage{Error: "Invalid request"})
		return
	}

	token, err := s.users.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		code := http.StatusUnauthorized
		msg := "Invalid username or password"
		if !errors.Is(err, common.ErrUnauthorized) {
			code = http.StatusInternalServerError
			msg = "Login failed"
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
		}
		if f.Machine() {
			writeError(w, f, code, msg)
			return
		}
		s.renderPage(w, code, "login.html", loginPage{Error: msg})
		return
	}

	if f.Machine() {
		writeToken(w, f, token)
		return
	}

	sid := sessions.NewSessionID()
	if err := s.sessions.Set(r.Context(), sid, token, s.tokenValidity); err != nil {
		s.logger.Error(r.Context(), "session create failed", "error", err.Error())
		s.renderPage(w, http.StatusInternalServerError, "login.html", loginPage{Error: "Login failed"})
		return
	}
	setSessionCookie(w, sid, int(s.tokenValidity.Seconds()))
	http.Redirect(w, r, "/motorcycles", http.StatusSeeOther)
}

// handleLogout drops the session cache entry and expires the cookie. The
// access token itself stays valid until its expiry; only the browser's
// handle on it is destroyed.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.sessions.Delete(r.Context(), c.Value); err != nil {
			s.logger.Error(r.Context(), "session delete failed", "error", err.Error())
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "register.html", loginPage{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	f := RequestFormat(r)

	creds, err := credentialsFromRequest(r)
	if err != nil {
		if f.Machine() {
			writeError(w, f, http.StatusBadRequest, "Invalid request body")
			return
		}
		s.renderPage(w, http.StatusBadRequest, "register.html", loginPage{Error: "Invalid request"})
		return
	}

	_, err = s.users.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		var code int
		var msg string
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			code, msg = http.StatusBadRequest, "Missing username or password"
		case errors.Is(err, common.ErrConflict):
			code, msg = http.StatusConflict, "Username already exists"
		default:
			code, msg = http.StatusInternalServerError, "Registration failed"
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		}
		if f.Machine() {
			writeError(w, f, code, msg)
			return
		}
		s.renderPage(w, code, "register.html", loginPage{Error: msg})
		return
	}

	if f.Machine() {
		writeMessage(w, f, http.StatusCreated, "User created!")
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
