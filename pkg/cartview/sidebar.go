package cartview

import (
	"bytes"
	"html/template"
	"sync"
)

var itemsTmpl = template.Must(template.New("items").Parse(
	`{{if .Rows}}{{range .Rows}}<div class="cart-item">` +
		`<span class="cart-item-name">{{.Name}}</span>` +
		`<span class="cart-item-qty">{{.Quantity}}</span>` +
		`<span class="cart-item-price">{{.Subtotal}}</span>` +
		`</div>{{end}}{{else}}<p>{{.Placeholder}}</p>{{end}}`))

// RenderItemsHTML renders the item list of p as sidebar markup.
func RenderItemsHTML(p Panel) (template.HTML, error) {
	var buf bytes.Buffer
	if err := itemsTmpl.Execute(&buf, p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Sidebar is a Surface holding the rendered cart sidebar, badge and the last
// notice. Responses may land in any order; the latest one wins.
type Sidebar struct {
	mu      sync.Mutex
	items   template.HTML
	total   string
	badge   int
	notices []string
}

// NewSidebar returns a Sidebar in its page-load state.
func NewSidebar() *Sidebar {
	return &Sidebar{total: FormatMoney(0)}
}

func (s *Sidebar) ShowPanel(p Panel) {
	items, err := RenderItemsHTML(p)
	if err != nil {
		items, _ = RenderItemsHTML(placeholder(PanelError, MsgLoadError))
		p.Total = FormatMoney(0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.total = p.Total
}

func (s *Sidebar) ShowBadge(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badge = n
}

func (s *Sidebar) Notify(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, msg)
}

// Items returns the rendered item list.
func (s *Sidebar) Items() template.HTML {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Total returns the rendered total.
func (s *Sidebar) Total() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Badge returns the badge count.
func (s *Sidebar) Badge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badge
}

// Notices returns every notice shown so far.
func (s *Sidebar) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}
