package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAdd(t *testing.T) {
	a := New(amt("120.50"), KES)
	b := New(amt("79.50"), KES)

	got := a.Add(b)
	if !got.Equal(New(amt("200.00"), KES)) {
		t.Fatalf("expected 200.00, got %s", got)
	}
}

func TestAddToZeroAdoptsCurrency(t *testing.T) {
	var zero Money
	got := zero.Add(New(amt("50"), KES))
	if got.Currency != KES {
		t.Fatalf("expected KES, got %v", got.Currency)
	}
	if !got.Amount.Equal(amt("50")) {
		t.Fatalf("expected 50, got %s", got.Amount)
	}
}

func TestMulInt(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3, the reason floats are out.
	got := New(amt("0.1"), KES).MulInt(3)
	if !got.Amount.Equal(amt("0.3")) {
		t.Fatalf("expected 0.3, got %s", got.Amount)
	}
}

func TestString(t *testing.T) {
	got := New(amt("1500"), KES).String()
	if got != "KES 1,500.00" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := New(amt("120.50"), KES)

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip mismatch: got %s want %s", out, in)
	}
}

func TestUnmarshalDefaultsToKES(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`{"amount":"10"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Currency != KES {
		t.Fatalf("expected KES default, got %v", m.Currency)
	}
}

func TestUnmarshalRejectsBadCurrency(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`{"amount":"10","currency":"nope"}`), &m); err == nil {
		t.Fatal("expected error for invalid currency code")
	}
}
