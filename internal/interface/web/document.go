package web

import (
	"html/template"
	"sync"
)

// Elements selects which cart elements a page carries.
type Elements struct {
	Items bool
	Total bool
	Badge bool
	Panel bool
}

// AllElements is the layout of the storefront page.
var AllElements = Elements{Items: true, Total: true, Badge: true, Panel: true}

type region struct {
	html template.HTML
}

type badge struct {
	text    string
	visible bool
}

type panel struct {
	active bool
}

// Document is the live visual state of one shopper's page. Absent elements
// are nil and every write to them is skipped.
type Document struct {
	mu    sync.RWMutex
	items *region
	total *region
	badge *badge
	panel *panel
}

func NewDocument(el Elements) *Document {
	d := &Document{}
	if el.Items {
		d.items = &region{}
	}
	if el.Total {
		d.total = &region{}
	}
	if el.Badge {
		d.badge = &badge{}
	}
	if el.Panel {
		d.panel = &panel{}
	}
	return d
}

func (d *Document) hasItems() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.items != nil
}

func (d *Document) replaceItems(html template.HTML) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.items == nil {
		return false
	}
	d.items.html = html
	return true
}

func (d *Document) setTotal(html template.HTML) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.total == nil {
		return false
	}
	d.total.html = html
	return true
}

func (d *Document) setBadge(text string, visible bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.badge == nil {
		return false
	}
	d.badge.text = text
	d.badge.visible = visible
	return true
}

// TogglePanel flips the cart panel and reports whether it is now open.
func (d *Document) TogglePanel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.panel == nil {
		return false
	}
	d.panel.active = !d.panel.active
	return d.panel.active
}

func (d *Document) ClosePanel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.panel != nil {
		d.panel.active = false
	}
}

// View is a copy of the document taken for a page render.
type View struct {
	HasItems     bool
	ItemsHTML    template.HTML
	HasTotal     bool
	TotalHTML    template.HTML
	HasBadge     bool
	BadgeText    string
	BadgeVisible bool
	HasPanel     bool
	PanelActive  bool
	ScrollLocked bool
}

func (d *Document) View() View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var v View
	if d.items != nil {
		v.HasItems = true
		v.ItemsHTML = d.items.html
	}
	if d.total != nil {
		v.HasTotal = true
		v.TotalHTML = d.total.html
	}
	if d.badge != nil {
		v.HasBadge = true
		v.BadgeText = d.badge.text
		v.BadgeVisible = d.badge.visible
	}
	if d.panel != nil {
		v.HasPanel = true
		v.PanelActive = d.panel.active
		v.ScrollLocked = d.panel.active
	}
	return v
}
