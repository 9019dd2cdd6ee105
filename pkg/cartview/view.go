// Package cartview renders the cart sidebar, the cart badge and the checkout
// action from the state the cart API returns.
package cartview

import (
	"context"
	"errors"
	"strconv"

	"cupstory/pkg/cart"
)

// Session identifies the signed-in owner. The zero value is signed out.
type Session struct {
	Owner string
}

// SignedIn reports whether the session has an owner.
func (s Session) SignedIn() bool {
	return s.Owner != ""
}

// PanelState says which placeholder, if any, the sidebar shows.
type PanelState int

const (
	PanelSignedOut PanelState = iota
	PanelEmpty
	PanelItems
	PanelError
)

// Placeholder texts.
const (
	MsgSignInToView  = "Please sign in to view your cart."
	MsgEmpty         = "Your cart is empty."
	MsgLoadError     = "Error loading cart."
	MsgSignInToAdd   = "Please sign in to add items to your cart."
	MsgSignInToPay   = "Please sign in to checkout."
	MsgAddFailed     = "Failed to add to cart"
	MsgCheckoutDone  = "Thank you for your order! Your cart has been cleared."
	MsgCheckoutRetry = "Could not clear cart. Please try again."
	MsgNoConnection  = "Error connecting to server."
)

// Row is one rendered cart line.
type Row struct {
	Name     string
	Quantity string
	Subtotal string
}

// Panel is the full sidebar content.
type Panel struct {
	State       PanelState
	Placeholder string
	Rows        []Row
	Total       string
}

// Surface displays what the view computes.
type Surface interface {
	ShowPanel(p Panel)
	ShowBadge(n int)
	Notify(msg string)
}

// FormatMoney renders v with a dollar prefix and two decimals.
func FormatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// BuildPanel derives the sidebar from lines.
func BuildPanel(lines []cart.Line) Panel {
	if len(lines) == 0 {
		return placeholder(PanelEmpty, MsgEmpty)
	}
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, Row{
			Name:     l.Name,
			Quantity: "×" + strconv.Itoa(l.Quantity),
			Subtotal: FormatMoney(l.Subtotal()),
		})
	}
	return Panel{State: PanelItems, Rows: rows, Total: FormatMoney(cart.Total(lines))}
}

func placeholder(state PanelState, msg string) Panel {
	return Panel{State: state, Placeholder: msg, Total: FormatMoney(0)}
}

// View drives a Surface from a CartAPI.
type View struct {
	api     CartAPI
	surface Surface
}

// NewView returns a View.
func NewView(api CartAPI, surface Surface) *View {
	return &View{api: api, surface: surface}
}

// RenderCartPanel fetches the session's cart and shows it. Signed-out
// sessions and failures show a placeholder with a zero total.
func (v *View) RenderCartPanel(ctx context.Context, sess Session) Panel {
	var p Panel
	if !sess.SignedIn() {
		p = placeholder(PanelSignedOut, MsgSignInToView)
	} else if lines, err := v.api.Get(ctx, sess.Owner); err != nil {
		p = placeholder(PanelError, MsgLoadError)
	} else {
		p = BuildPanel(lines)
	}
	v.surface.ShowPanel(p)
	return p
}

// UpdateBadge shows the summed quantity of lines without calling the server.
func (v *View) UpdateBadge(lines []cart.Line) int {
	n := cart.TotalQuantity(lines)
	v.surface.ShowBadge(n)
	return n
}

// RefreshBadge fetches the session's cart and shows its summed quantity. It
// shows 0 for signed-out sessions and on any failure, so it is safe to call
// at start-up.
func (v *View) RefreshBadge(ctx context.Context, sess Session) int {
	if !sess.SignedIn() {
		v.surface.ShowBadge(0)
		return 0
	}
	lines, err := v.api.Get(ctx, sess.Owner)
	if err != nil {
		v.surface.ShowBadge(0)
		return 0
	}
	return v.UpdateBadge(lines)
}

// AddToCart adds one unit of the named item and updates the badge from the
// returned cart.
func (v *View) AddToCart(ctx context.Context, sess Session, name string, price float64) error {
	if !sess.SignedIn() {
		v.surface.Notify(MsgSignInToAdd)
		return ErrNotSignedIn
	}
	c, err := v.api.Add(ctx, sess.Owner, cart.Line{Name: name, Price: price, Quantity: 1})
	if err != nil {
		v.surface.Notify(failureNotice(err, MsgAddFailed))
		return err
	}
	v.UpdateBadge(c.Lines)
	return nil
}

// Checkout clears the session's cart. On success the panel is reset to empty
// and the badge to 0; on failure the surface is left as it was apart from
// the notice.
func (v *View) Checkout(ctx context.Context, sess Session) error {
	if !sess.SignedIn() {
		v.surface.Notify(MsgSignInToPay)
		return ErrNotSignedIn
	}
	if err := v.api.Clear(ctx, sess.Owner); err != nil {
		v.surface.Notify(failureNotice(err, MsgCheckoutRetry))
		return err
	}
	v.surface.Notify(MsgCheckoutDone)
	v.surface.ShowPanel(placeholder(PanelEmpty, MsgEmpty))
	v.surface.ShowBadge(0)
	return nil
}

func failureNotice(err error, fault string) string {
	if errors.Is(err, ErrTransport) {
		return MsgNoConnection
	}
	return fault
}
