package httpapi

import (
	"net/http"

	"arionfm/internal/admin"
)

type loginRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token  string       `json:"token"`
	Status admin.Status `json:"status"`
}

func (s *Server) handleSecretClick(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.SecretClick())
}

// handleLogin keeps the listener on the current view.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, r := s.session(r)
	token, err := sess.Login(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, Status: sess.AdminStatus()})
}

func (s *Server) handleDismissLogin(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.DismissLogin())
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(r)
	writeJSON(w, http.StatusOK, sess.Logout())
}
