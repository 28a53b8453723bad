package httpapi

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/go-chi/render"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (lr *loginRequest) Bind(r *http.Request) error {
	if lr.Username == "" || lr.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
}

func (lr *loginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := &loginRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Default().InfoContext(r.Context(), "login rejected",
			slog.String("username", req.Username),
		)
		render.Render(w, r, ErrUnauthorized(err))
		return
	}

	render.Render(w, r, &loginResponse{AuthToken: token})
}

type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (cr *changePasswordRequest) Bind(r *http.Request) error {
	if cr.Username == "" || cr.CurrentPassword == "" || cr.NewPassword == "" {
		return fmt.Errorf("username, current_password and new_password are required")
	}
	return nil
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	req := &changePasswordRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.auth.ChangePassword(r.Context(), req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		render.Render(w, r, ErrUnauthorized(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
