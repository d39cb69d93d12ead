package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"go.uber.org/zap"

	domcart "example.com/storefront/internal/domain/cart"
	cartuc "example.com/storefront/internal/usecase/cart"
)

var ErrControlNotFound = errors.New("removal control not rendered")

type Remover interface {
	Remove(ctx context.Context, id int64) error
}

// Row is one rendered line of the cart panel.
type Row struct {
	ID       string
	Image    string
	Name     string
	Price    string
	Quantity int
	Subtotal string
}

func NewRow(item domcart.LineItem) Row {
	return Row{
		ID:       strconv.FormatInt(item.ID, 10),
		Image:    item.Image,
		Name:     item.Name,
		Price:    item.Price.StringFixed(2),
		Quantity: item.Quantity,
		Subtotal: item.Subtotal().StringFixed(2),
	}
}

// CartPresenter projects cart snapshots into a Document and owns the removal
// controls of the last render.
type CartPresenter struct {
	doc    *Document
	tmpl   *template.Template
	logger *zap.Logger

	mu       sync.Mutex
	remover  Remover
	controls map[string]func(ctx context.Context) error
}

func NewCartPresenter(doc *Document, logger *zap.Logger) *CartPresenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartPresenter{
		doc:      doc,
		tmpl:     templates,
		logger:   logger,
		controls: map[string]func(ctx context.Context) error{},
	}
}

// Bind sets the target of removal controls. Controls rendered before Bind do
// nothing until the next render.
func (p *CartPresenter) Bind(r Remover) {
	p.mu.Lock()
	p.remover = r
	p.mu.Unlock()
}

// Render rebuilds the item list from scratch, rewires removal controls and
// writes the total.
func (p *CartPresenter) Render(s cartuc.Snapshot) {
	defer p.RenderTotal(s)

	if !p.doc.hasItems() {
		p.wireRemovalControls(nil)
		return
	}

	rows := make([]Row, 0, len(s.Items))
	for _, item := range s.Items {
		rows = append(rows, NewRow(item))
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "cart_items", rows); err != nil {
		p.logger.Error("render cart items failed", zap.Error(err))
		p.wireRemovalControls(nil)
		return
	}
	p.doc.replaceItems(template.HTML(buf.String()))
	p.wireRemovalControls(rows)
}

func (p *CartPresenter) RenderTotal(s cartuc.Snapshot) {
	p.doc.setTotal(template.HTML(" " + template.HTMLEscapeString(s.Total.StringFixed(2))))
}

func (p *CartPresenter) UpdateBadge(count int) {
	p.doc.setBadge(strconv.Itoa(count), count > 0)
}

// wireRemovalControls drops every previous binding and binds one control per
// rendered row.
func (p *CartPresenter) wireRemovalControls(rows []Row) {
	controls := make(map[string]func(ctx context.Context) error, len(rows))
	for _, row := range rows {
		tag := row.ID
		controls[tag] = func(ctx context.Context) error {
			id, err := strconv.ParseInt(tag, 10, 64)
			if err != nil {
				return fmt.Errorf("removal control %q: %w", tag, err)
			}
			p.mu.Lock()
			r := p.remover
			p.mu.Unlock()
			if r == nil {
				return nil
			}
			return r.Remove(ctx, id)
		}
	}

	p.mu.Lock()
	p.controls = controls
	p.mu.Unlock()
}

// Activate fires the removal control tagged tag.
func (p *CartPresenter) Activate(ctx context.Context, tag string) error {
	p.mu.Lock()
	control, ok := p.controls[tag]
	p.mu.Unlock()
	if !ok {
		return ErrControlNotFound
	}
	return control(ctx)
}

// Controls lists the tags of the currently wired removal controls.
func (p *CartPresenter) Controls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	tags := make([]string, 0, len(p.controls))
	for tag := range p.controls {
		tags = append(tags, tag)
	}
	return tags
}
