package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Nelson707/store-project-sub000/internal/money"
	"github.com/Nelson707/store-project-sub000/internal/storage"
)

// memStore is an in-memory storage.Store for tests.
type memStore struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	loadErr error
	saves   int
}

func (s *memStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.data == nil {
		return nil, storage.ErrNotFound
	}
	return s.data, nil
}

func (s *memStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	s.saves++
	return nil
}

func kes(s string) money.Money {
	return money.New(decimal.RequireFromString(s), money.KES)
}

func testProduct(id int64, name, price string) Product {
	return Product{ID: id, Name: name, Brand: "Acme", Price: kes(price)}
}

func TestAddMergesByProductID(t *testing.T) {
	c := New(&memStore{}, Options{})

	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(2, "Brush", "80.00"))
	c.Add(testProduct(1, "Soap", "120.00"))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].ProductID != 2 || lines[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
}

func TestAddKeepsOriginalSnapshot(t *testing.T) {
	c := New(&memStore{}, Options{})

	c.Add(testProduct(1, "Soap", "120.00"))
	// Re-add after a price change upstream: the line keeps the first snapshot.
	c.Add(testProduct(1, "Soap Deluxe", "150.00"))

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Name != "Soap" {
		t.Fatalf("expected original name kept, got %q", lines[0].Name)
	}
	if !lines[0].UnitPrice.Equal(kes("120.00")) {
		t.Fatalf("expected original price kept, got %s", lines[0].UnitPrice)
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestDecrementFloorRemovesLine(t *testing.T) {
	c := New(&memStore{}, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(1, "Soap", "120.00"))

	c.Decrement(1)
	if lines := c.Lines(); len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %+v", lines)
	}

	// At quantity 1 another decrement removes the line instead of going to 0.
	c.Decrement(1)
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New(&memStore{}, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))

	c.SetQuantity(1, 5)
	if lines := c.Lines(); lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}

	c.SetQuantity(1, 0)
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("expected line removed on zero quantity, got %+v", lines)
	}
}

func TestMissingProductIsNoOp(t *testing.T) {
	c := New(&memStore{}, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))

	c.Remove(99)
	c.Increment(99)
	c.Decrement(99)
	c.SetQuantity(99, 3)

	if lines := c.Lines(); len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected cart untouched, got %+v", lines)
	}
}

func TestTotals(t *testing.T) {
	c := New(&memStore{}, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(2, "Brush", "80.50"))

	if got := c.TotalItems(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	want := kes("320.50")
	if got := c.Subtotal(); !got.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, got)
	}
}

func TestEmptyCartTotals(t *testing.T) {
	c := New(&memStore{}, Options{})
	if got := c.TotalItems(); got != 0 {
		t.Fatalf("expected 0 items, got %d", got)
	}
	if got := c.Subtotal(); !got.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", got)
	}
}

func TestClear(t *testing.T) {
	store := &memStore{}
	c := New(store, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(2, "Brush", "80.00"))

	c.Clear()

	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
	// The cleared state is persisted too.
	var snap []Line
	if err := json.Unmarshal(store.data, &snap); err != nil {
		t.Fatalf("snapshot not valid json: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := &memStore{}

	c := New(store, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))
	c.Add(testProduct(2, "Brush", "80.00"))
	c.Increment(2)

	restored := New(store, Options{})
	got := restored.Lines()
	want := c.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines after restore, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ProductID != want[i].ProductID || got[i].Quantity != want[i].Quantity {
			t.Fatalf("line %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
		if !got[i].UnitPrice.Equal(want[i].UnitPrice) {
			t.Fatalf("line %d price mismatch: got %s want %s", i, got[i].UnitPrice, want[i].UnitPrice)
		}
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	store := &memStore{data: []byte("{not json")}

	c := New(store, Options{})
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("expected empty cart on corrupt snapshot, got %+v", lines)
	}

	// The cart stays usable afterwards.
	c.Add(testProduct(1, "Soap", "120.00"))
	if got := c.TotalItems(); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
}

func TestLoadErrorStartsEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk trouble")}
	c := New(store, Options{})
	if lines := c.Lines(); len(lines) != 0 {
		t.Fatalf("expected empty cart on load error, got %+v", lines)
	}
}

func TestSaveErrorDoesNotBlockMutation(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	c := New(store, Options{})

	c.Add(testProduct(1, "Soap", "120.00"))
	if got := c.TotalItems(); got != 1 {
		t.Fatalf("expected mutation to apply despite save error, got %d items", got)
	}
}

func TestAutoOpenOnAdd(t *testing.T) {
	c := New(&memStore{}, Options{AutoOpen: true})

	var events []bool
	c.Watch(func(open bool) { events = append(events, open) })

	c.Add(testProduct(1, "Soap", "120.00"))
	if !c.IsOpen() {
		t.Fatal("expected drawer open after add")
	}
	if len(events) != 1 || !events[0] {
		t.Fatalf("expected one open notification, got %v", events)
	}

	// Already open: another add does not notify again.
	c.Add(testProduct(2, "Brush", "80.00"))
	if len(events) != 1 {
		t.Fatalf("expected no duplicate notification, got %v", events)
	}

	c.SetOpen(false)
	if c.IsOpen() {
		t.Fatal("expected drawer closed")
	}
	if len(events) != 2 || events[1] {
		t.Fatalf("expected close notification, got %v", events)
	}
}

func TestNoAutoOpenWhenDisabled(t *testing.T) {
	c := New(&memStore{}, Options{})
	c.Add(testProduct(1, "Soap", "120.00"))
	if c.IsOpen() {
		t.Fatal("expected drawer to stay closed")
	}
}

// Walks the browsing session from the product page to an emptied cart.
func TestShoppingScenario(t *testing.T) {
	c := New(&memStore{}, Options{AutoOpen: true})

	c.Add(testProduct(10, "Phone", "15000.00"))
	c.Add(testProduct(20, "Case", "500.00"))
	c.Add(testProduct(10, "Phone", "15000.00"))

	if got := c.TotalItems(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	if got, want := c.Subtotal(), kes("30500.00"); !got.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, got)
	}

	c.Decrement(10)
	c.Remove(20)

	if got, want := c.Subtotal(), kes("15000.00"); !got.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, got)
	}

	c.Clear()
	if got := c.TotalItems(); got != 0 {
		t.Fatalf("expected empty cart, got %d items", got)
	}
	if !c.Subtotal().IsZero() {
		t.Fatalf("expected zero subtotal, got %s", c.Subtotal())
	}
}

func TestConcurrentMutations(t *testing.T) {
	c := New(&memStore{}, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(testProduct(1, "Soap", "120.00"))
		}()
	}
	wg.Wait()

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 20 {
		t.Fatalf("expected quantity 20, got %d", lines[0].Quantity)
	}
}
