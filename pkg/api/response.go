package api

import (
	"encoding/json"
	"net/http"

	"cupstory/pkg/cart"
)

const serverError = "Server error"

// StatusResponse is the body of every reply without a payload, and of every
// failure.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AddRequest is the body of POST /api/cart/add.
type AddRequest struct {
	Email string    `json:"email"`
	Item  cart.Line `json:"item"`
}

// OwnerRequest is the body of POST /api/cart/clear.
type OwnerRequest struct {
	Email string `json:"email"`
}

// CartResponse carries the full cart after an add.
type CartResponse struct {
	Success bool      `json:"success"`
	Cart    cart.Cart `json:"cart"`
}

// LinesResponse carries the lines returned by GET /api/cart.
type LinesResponse struct {
	Success bool        `json:"success"`
	Cart    []cart.Line `json:"cart"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
}

type usersResponse struct {
	Success bool       `json:"success"`
	Users   []userView `json:"users"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, StatusResponse{Success: false, Message: msg})
}
