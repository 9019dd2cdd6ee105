package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"cupstory/pkg/account"
	"cupstory/pkg/contact"
	"cupstory/pkg/otel"
)

func welcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome to the API"))
}

// addToCartHandler merges an item into the owner's cart.
// @Summary Add item to cart
// @Description Increments an existing line of the same name by one, otherwise appends the item.
// @Accept json
// @Produce json
// @Param body body AddRequest true "Owner email and item"
// @Success 200 {object} CartResponse
// @Failure 500 {object} StatusResponse
// @Router /api/cart/add [post]
func (s *Server) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addToCartHandler")
	defer span.End()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error(ctx, "decode add request", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	span.SetAttributes(attribute.String("cart.owner", req.Email), attribute.String("cart.item", req.Item.Name))
	c, err := s.carts.AddItem(ctx, req.Email, req.Item)
	if err != nil {
		s.log.Error(ctx, "add to cart", "owner", req.Email, "item", req.Item.Name, "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	writeJSON(w, http.StatusOK, CartResponse{Success: true, Cart: c})
}

// clearCartHandler empties the owner's cart.
// @Summary Clear cart
// @Accept json
// @Produce json
// @Param body body OwnerRequest true "Owner email"
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /api/cart/clear [post]
func (s *Server) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "clearCartHandler")
	defer span.End()

	var req OwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error(ctx, "decode clear request", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	span.SetAttributes(attribute.String("cart.owner", req.Email))
	if err := s.carts.Clear(ctx, req.Email); err != nil {
		s.log.Error(ctx, "clear cart", "owner", req.Email, "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// getCartHandler returns the owner's cart lines.
// @Summary Get cart lines
// @Produce json
// @Param email query string true "Owner email"
// @Success 200 {object} LinesResponse
// @Failure 500 {object} StatusResponse
// @Router /api/cart [get]
func (s *Server) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()

	email := r.URL.Query().Get("email")
	span.SetAttributes(attribute.String("cart.owner", email))
	lines, err := s.carts.Get(ctx, email)
	if err != nil {
		s.log.Error(ctx, "get cart", "owner", email, "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	writeJSON(w, http.StatusOK, LinesResponse{Success: true, Cart: lines})
}

// loginHandler checks credentials.
// @Summary Login
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /api/login [post]
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error(ctx, "decode login request", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	a, err := s.accounts.Login(ctx, req.Email, req.Password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.log.Error(ctx, "login", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: userView{Email: a.Email}})
}

// registerHandler creates an account.
// @Summary Register
// @Accept json
// @Produce json
// @Param creds body credentials true "Credentials"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /api/register [post]
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "registerHandler")
	defer span.End()

	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error(ctx, "decode register request", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	err := s.accounts.Register(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, account.ErrExists):
		fail(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, account.ErrMissingFields):
		fail(w, http.StatusBadRequest, "Email and password are required")
	case err != nil:
		s.log.Error(ctx, "register", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
	default:
		s.log.Info(ctx, "account registered", "email", req.Email)
		writeJSON(w, http.StatusOK, StatusResponse{Success: true})
	}
}

// listUsersHandler lists registered emails.
// @Summary List users
// @Produce json
// @Success 200 {object} usersResponse
// @Failure 500 {object} StatusResponse
// @Router /api/users [get]
func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listUsersHandler")
	defer span.End()

	ids, err := s.accounts.Identifiers(ctx)
	if err != nil {
		s.log.Error(ctx, "list users", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	users := make([]userView, 0, len(ids))
	for _, id := range ids {
		users = append(users, userView{Email: id})
	}
	writeJSON(w, http.StatusOK, usersResponse{Success: true, Users: users})
}

// contactHandler stores a contact form submission.
// @Summary Submit contact message
// @Accept json
// @Produce json
// @Param message body contact.Message true "Message"
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /api/contact [post]
func (s *Server) contactHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "contactHandler")
	defer span.End()

	var m contact.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.log.Error(ctx, "decode contact message", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	m.ID = ""
	saved, err := s.contacts.Append(ctx, m)
	if err != nil {
		s.log.Error(ctx, "append contact message", "error", err)
		fail(w, http.StatusInternalServerError, serverError)
		return
	}
	s.log.Info(ctx, "contact message stored", "id", saved.ID, "newsletter", saved.Newsletter)
	writeJSON(w, http.StatusOK, StatusResponse{Success: true})
}
