package cartview

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupstory/pkg/api"
	"cupstory/pkg/cart"
	"cupstory/pkg/cart/memory"
	"cupstory/pkg/logger"
)

type downRepo struct{}

func (downRepo) Find(ctx context.Context, owner string) (cart.Cart, error) {
	return cart.Cart{}, errors.New("db down")
}

func (downRepo) Save(ctx context.Context, c cart.Cart) error { return errors.New("db down") }

func newAPIServer(t *testing.T, repo cart.Repository) *httptest.Server {
	t.Helper()
	s := api.New(api.Deps{
		Carts: cart.NewService(repo),
		Log:   logger.New(io.Discard, logger.LevelError, "test", nil),
	})
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, memory.New())
	c := NewClient(srv.URL+"/", srv.Client())

	lines, err := c.Get(ctx, "a+b@x.com")
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = c.Add(ctx, "a+b@x.com", cart.Line{Name: "Burger", Price: 9.5, Quantity: 1})
	require.NoError(t, err)
	got, err := c.Add(ctx, "a+b@x.com", cart.Line{Name: "Burger", Price: 9.5, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "a+b@x.com", got.Owner)
	assert.Equal(t, []cart.Line{{Name: "Burger", Price: 9.5, Quantity: 2}}, got.Lines)

	lines, err = c.Get(ctx, "a+b@x.com")
	require.NoError(t, err)
	assert.Equal(t, got.Lines, lines)

	require.NoError(t, c.Clear(ctx, "a+b@x.com"))
	lines, err = c.Get(ctx, "a+b@x.com")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClientServerFault(t *testing.T) {
	srv := newAPIServer(t, downRepo{})
	c := NewClient(srv.URL, srv.Client())

	_, err := c.Get(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrServerFault)
	assert.ErrorIs(t, c.Clear(context.Background(), "a@x.com"), ErrServerFault)
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Get(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCheckoutScenarioOverHTTP(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t, memory.New())
	sb := NewSidebar()
	v := NewView(NewClient(srv.URL, srv.Client()), sb)
	sess := Session{Owner: "a@x.com"}

	assert.Equal(t, 0, v.RefreshBadge(ctx, sess))
	require.NoError(t, v.AddToCart(ctx, sess, "Burger", 9.5))
	require.NoError(t, v.AddToCart(ctx, sess, "Burger", 9.5))
	require.NoError(t, v.AddToCart(ctx, sess, "Fries", 3.0))
	assert.Equal(t, 3, sb.Badge())

	p := v.RenderCartPanel(ctx, sess)
	assert.Equal(t, "$22.00", p.Total)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Burger", p.Rows[0].Name)

	require.NoError(t, v.Checkout(ctx, sess))
	assert.Equal(t, 0, v.RefreshBadge(ctx, sess))
	assert.Equal(t, PanelEmpty, v.RenderCartPanel(ctx, sess).State)
}
