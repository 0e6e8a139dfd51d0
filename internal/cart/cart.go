// Package cart owns the in-memory cart aggregate shared by the storefront
// and the POS console: one line per product, a price snapshot taken when the
// item was added, and totals derived on every read.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/money"
	"github.com/Nelson707/store-project-sub000/internal/storage"
)

// Product is the add-time view of a backend product. Name, brand and image
// are copied onto the line as a snapshot, not kept as a live reference.
type Product struct {
	ID            int64
	Name          string
	Brand         string
	ImageFileName string
	Price         money.Money
}

type Line struct {
	ProductID     int64       `json:"productId"`
	Name          string      `json:"name"`
	Brand         string      `json:"brand,omitempty"`
	ImageFileName string      `json:"imageFileName,omitempty"`
	UnitPrice     money.Money `json:"unitPrice"`
	Quantity      int         `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() money.Money {
	return l.UnitPrice.MulInt(int64(l.Quantity))
}

type Options struct {
	// AutoOpen opens the drawer as a side effect of adding an item, so the
	// shopper gets immediate feedback. The POS console leaves it off.
	AutoOpen bool
	Logger   *zap.Logger
}

// Cart is the authoritative in-memory state; the snapshot store is a
// reload-survival cache behind it. Handlers run concurrently, so all
// access goes through the mutex even though each mutation is tiny.
type Cart struct {
	mu       sync.Mutex
	lines    []Line
	open     bool
	watchers []func(open bool)

	store    storage.Store
	autoOpen bool
	logger   *zap.Logger
}

// New restores the cart from its snapshot store. A missing or unreadable
// snapshot degrades to an empty cart; it is never surfaced past the log.
func New(store storage.Store, opts Options) *Cart {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cart{store: store, autoOpen: opts.AutoOpen, logger: logger}
	c.restore()
	return c
}

func (c *Cart) restore() {
	if c.store == nil {
		return
	}
	data, err := c.store.Load(context.Background())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("loading cart snapshot failed, starting empty", zap.Error(err))
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		c.logger.Warn("cart snapshot is corrupt, starting empty", zap.Error(err))
		return
	}
	c.lines = lines
}

// persistLocked writes the snapshot after a mutation. Best effort: the
// in-memory state stays authoritative if the write fails.
func (c *Cart) persistLocked() {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(c.lines)
	if err != nil {
		c.logger.Warn("encoding cart snapshot failed", zap.Error(err))
		return
	}
	if err := c.store.Save(context.Background(), data); err != nil {
		c.logger.Warn("saving cart snapshot failed", zap.Error(err))
	}
}

func (c *Cart) findLocked(productID int64) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges the product into the cart: an existing line gains quantity 1
// and keeps its original price and display snapshot, otherwise a new line
// is appended with quantity 1. With AutoOpen set, the drawer opens.
func (c *Cart) Add(p Product) {
	c.mu.Lock()
	if i := c.findLocked(p.ID); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, Line{
			ProductID:     p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			ImageFileName: p.ImageFileName,
			UnitPrice:     p.Price,
			Quantity:      1,
		})
	}
	c.persistLocked()

	opened := false
	if c.autoOpen && !c.open {
		c.open = true
		opened = true
	}
	watchers := c.watchersLocked()
	c.mu.Unlock()

	if opened {
		notify(watchers, true)
	}
}

// Remove deletes the line for productID. Unknown products are a no-op.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.findLocked(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.persistLocked()
}

// Increment raises the line's quantity by one. Unknown products are a no-op.
func (c *Cart) Increment(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.findLocked(productID)
	if i < 0 {
		return
	}
	c.lines[i].Quantity++
	c.persistLocked()
}

// Decrement lowers the line's quantity by one; at quantity 1 the line is
// removed rather than kept at zero. Unknown products are a no-op.
func (c *Cart) Decrement(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.findLocked(productID)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity--
	}
	c.persistLocked()
}

// SetQuantity sets the line's quantity directly; anything below 1 removes
// the line. Unknown products are a no-op.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.findLocked(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity = quantity
	}
	c.persistLocked()
}

// Clear empties the cart. Called after a confirmed checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persistLocked()
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of all line quantities, recomputed on every call.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity over all lines,
// recomputed on every call. Display-only: the backend re-prices at checkout.
func (c *Cart) Subtotal() money.Money {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := money.Zero()
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsOpen reports whether the drawer is shown. Transient UI state, never
// part of the persisted snapshot.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetOpen shows or hides the drawer and notifies watchers on a change.
func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	changed := c.open != open
	c.open = open
	watchers := c.watchersLocked()
	c.mu.Unlock()

	if changed {
		notify(watchers, open)
	}
}

// Watch registers a callback for drawer visibility changes (header badge,
// drawer component). Callbacks run synchronously on the mutating goroutine.
func (c *Cart) Watch(fn func(open bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, fn)
}

func (c *Cart) watchersLocked() []func(open bool) {
	out := make([]func(open bool), len(c.watchers))
	copy(out, c.watchers)
	return out
}

func notify(watchers []func(open bool), open bool) {
	for _, fn := range watchers {
		fn(open)
	}
}
