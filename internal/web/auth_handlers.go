package web

import (
	"errors"
	"net/http"

	"github.com/mmynk/healthtracker/internal/auth"
)

const genericErrorMessage = "Something went wrong. Please try again."

type authView struct {
	Username string
	Email    string

	// Notice is an informational banner, Error a form-wide failure.
	Notice string
	Error  string

	EmailError    string
	PasswordError string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	view := authView{}
	q := r.URL.Query()
	switch {
	case q.Get("registered") == "1":
		view.Notice = "Registration successful. Please log in."
	case q.Get("logged_out") == "1":
		view.Notice = "You have been logged out."
	}
	s.render(w, r, http.StatusOK, "login.html", view)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	view := authView{Email: email}

	if email == "" || password == "" {
		view.Error = "Email and password are required."
		s.render(w, r, http.StatusOK, "login.html", view)
		return
	}

	token, _, err := s.auth.Login(r.Context(), email, password)
	switch {
	case err == nil:
		auth.SetSessionCookie(w, token, s.jwt.TokenDuration(), s.cookieSecure)
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	case errors.Is(err, auth.ErrUserNotFound):
		view.EmailError = "User does not exist. Please register."
	case errors.Is(err, auth.ErrBadPassword):
		view.PasswordError = "Invalid password."
	default:
		s.internalError(r, "Login failed", err)
		view.Error = genericErrorMessage
		s.render(w, r, http.StatusInternalServerError, "login.html", view)
		return
	}

	s.render(w, r, http.StatusOK, "login.html", view)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", authView{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := authView{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	_, err := s.auth.Register(r.Context(), view.Username, view.Email, r.PostFormValue("password"))
	switch {
	case err == nil:
		http.Redirect(w, r, loginPath+"?registered=1", http.StatusFound)
		return
	case errors.Is(err, auth.ErrMissingFields):
		view.Error = "Please fill out all fields."
	case errors.Is(err, auth.ErrWeakPassword):
		view.PasswordError = "Password must be at least 8 characters long."
	case errors.Is(err, auth.ErrLongPassword):
		view.PasswordError = "Password must be at most 72 bytes long."
	case errors.Is(err, auth.ErrDuplicateUser):
		view.Error = "A user with this email or username already exists."
	default:
		s.internalError(r, "Registration failed", err)
		view.Error = genericErrorMessage
		s.render(w, r, http.StatusInternalServerError, "register.html", view)
		return
	}

	s.render(w, r, http.StatusOK, "register.html", view)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, s.cookieSecure)
	http.Redirect(w, r, loginPath+"?logged_out=1", http.StatusFound)
}
