package money

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	m, err := New(15000, "usd")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Currency != "USD" {
		t.Fatalf("currency = %q, want USD", m.Currency)
	}

	if _, err := New(100, "dollars"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("err = %v, want ErrInvalidCurrency", err)
	}
}

func TestAdd(t *testing.T) {
	sum, err := Must(10000, "USD").Add(Must(5000, "USD"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Amount != 15000 {
		t.Fatalf("amount = %d, want 15000", sum.Amount)
	}

	if _, err := Must(10000, "USD").Add(Must(5000, "EUR")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("err = %v, want ErrCurrencyMismatch", err)
	}
}

func TestMultiply(t *testing.T) {
	got := Must(10000, "USD").Multiply(4)
	if got.Amount != 40000 {
		t.Fatalf("amount = %d, want 40000", got.Amount)
	}
	if got.Currency != "USD" {
		t.Fatalf("currency = %q, want USD", got.Currency)
	}
}

func TestPredicates(t *testing.T) {
	if !Must(0, "USD").IsZero() {
		t.Fatal("zero amount must be zero")
	}
	if Must(1, "USD").IsZero() {
		t.Fatal("non-zero amount must not be zero")
	}
	if !(Money{Amount: -5, Currency: "USD"}).IsNegative() {
		t.Fatal("negative amount must be negative")
	}
}

func TestString(t *testing.T) {
	if got := Must(15050, "USD").String(); got != "150.50 USD" {
		t.Fatalf("String = %q", got)
	}
}
