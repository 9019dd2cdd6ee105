package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cupstory/pkg/account"
	accountmem "cupstory/pkg/account/memory"
	"cupstory/pkg/cart"
	cartmem "cupstory/pkg/cart/memory"
	contactmem "cupstory/pkg/contact/memory"
	"cupstory/pkg/logger"
)

type brokenRepo struct{}

func (brokenRepo) Find(ctx context.Context, owner string) (cart.Cart, error) {
	return cart.Cart{}, errors.New("connection refused")
}

func (brokenRepo) Save(ctx context.Context, c cart.Cart) error {
	return errors.New("connection refused")
}

type fixture struct {
	router   http.Handler
	contacts *contactmem.Sink
}

func newFixture(repo cart.Repository) fixture {
	contacts := contactmem.New()
	s := New(Deps{
		Carts:    cart.NewService(repo),
		Accounts: account.NewService(accountmem.New()).WithCost(bcrypt.MinCost),
		Contacts: contacts,
		Log:      logger.New(io.Discard, logger.LevelDebug, "test", nil),
	})
	return fixture{router: s.Router(), contacts: contacts}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, rd))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCartEndpoints(t *testing.T) {
	f := newFixture(cartmem.New())
	burger := cart.Line{Name: "Burger", Price: 9.5, Quantity: 1}

	rec := f.do(t, http.MethodPost, "/api/cart/add", AddRequest{Email: "a@x.com", Item: burger})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/cart/add", AddRequest{Email: "a@x.com", Item: burger})
	require.Equal(t, http.StatusOK, rec.Code)
	added := decodeBody[CartResponse](t, rec)
	assert.True(t, added.Success)
	assert.Equal(t, "a@x.com", added.Cart.Owner)
	assert.Equal(t, []cart.Line{{Name: "Burger", Price: 9.5, Quantity: 2}}, added.Cart.Lines)

	rec = f.do(t, http.MethodPost, "/api/cart/add", AddRequest{Email: "a@x.com", Item: cart.Line{Name: "Fries", Price: 3, Quantity: 1}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/cart?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[LinesResponse](t, rec)
	assert.True(t, got.Success)
	require.Len(t, got.Cart, 2)
	assert.Equal(t, "Burger", got.Cart[0].Name)
	assert.Equal(t, "Fries", got.Cart[1].Name)

	rec = f.do(t, http.MethodPost, "/api/cart/clear", OwnerRequest{Email: "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/cart?email=a@x.com", nil)
	assert.JSONEq(t, `{"success":true,"cart":[]}`, rec.Body.String())
}

func TestGetCartUnknownOwnerIsEmpty(t *testing.T) {
	f := newFixture(cartmem.New())
	rec := f.do(t, http.MethodGet, "/api/cart?email=nobody@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"cart":[]}`, rec.Body.String())
}

func TestClearUnknownOwnerSucceeds(t *testing.T) {
	f := newFixture(cartmem.New())
	rec := f.do(t, http.MethodPost, "/api/cart/clear", OwnerRequest{Email: "nobody@x.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartFailuresAreGeneric(t *testing.T) {
	f := newFixture(brokenRepo{})
	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/cart/add", AddRequest{Email: "a@x.com", Item: cart.Line{Name: "Tea", Price: 2}}},
		{http.MethodPost, "/api/cart/clear", OwnerRequest{Email: "a@x.com"}},
		{http.MethodGet, "/api/cart?email=a@x.com", nil},
	}
	for _, tc := range cases {
		rec := f.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String(), tc.path)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	}
}

func TestAddWithoutOwnerFails(t *testing.T) {
	f := newFixture(cartmem.New())
	rec := f.do(t, http.MethodPost, "/api/cart/add", AddRequest{Item: cart.Line{Name: "Tea", Price: 2}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAccountEndpoints(t *testing.T) {
	f := newFixture(cartmem.New())
	creds := credentials{Email: "a@x.com", Password: "secret"}

	rec := f.do(t, http.MethodPost, "/api/register", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/register", creds)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Email already exists"}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/register", credentials{Email: "b@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"user":{"email":"a@x.com"}}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/login", credentials{Email: "a@x.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"users":[{"email":"a@x.com"}]}`, rec.Body.String())
}

func TestContactEndpoint(t *testing.T) {
	f := newFixture(cartmem.New())
	rec := f.do(t, http.MethodPost, "/api/contact", map[string]any{
		"id": "client-chosen", "name": "Ann", "email": "a@x.com", "subject": "Booking", "message": "Table for 4", "newsletter": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	msgs := f.contacts.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ann", msgs[0].Name)
	assert.True(t, msgs[0].Newsletter)
	assert.NotEqual(t, "client-chosen", msgs[0].ID)
	assert.False(t, msgs[0].Date.IsZero())
}

func TestWelcomeAndPreflight(t *testing.T) {
	f := newFixture(cartmem.New())
	rec := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, "Welcome to the API", rec.Body.String())

	rec = f.do(t, http.MethodOptions, "/api/cart/add", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Empty(t, rec.Body.String())
}
