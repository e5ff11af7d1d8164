package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	domainpricing "stayly/internal/domain/pricing"
	"stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
	"stayly/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*Service, *memory.PropertyRepository, *memory.EventSink) {
	t.Helper()
	periods := memory.NewPeriodRepository()
	catalog := memory.NewPropertyRepository()
	sink := memory.NewEventSink()
	svc := &Service{
		Periods: periods,
		Catalog: catalog,
		Events:  sink,
		Clock:   func() time.Time { return date(2025, time.January, 15) },
	}
	return svc, catalog, sink
}

func seedProperty(t *testing.T, catalog *memory.PropertyRepository, id string, baseCents int64) {
	t.Helper()
	property, err := properties.NewProperty(properties.CreateParams{
		ID:          properties.PropertyID(id),
		Host:        "host-1",
		Title:       "Sea view flat",
		Address:     properties.Address{Line1: "1 Shore Rd", City: "Brighton", Country: "GB"},
		GuestsLimit: 4,
		BaseNightly: money.Must(baseCents, "USD"),
	})
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	if err := catalog.Save(context.Background(), property); err != nil {
		t.Fatalf("save property: %v", err)
	}
}

func TestCreatePeriodRejectsOverlapWithSibling(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	_, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Name:       "June",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("first period: %v", err)
	}

	_, err = svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Name:       "Late June",
		Start:      date(2025, time.June, 20),
		End:        date(2025, time.July, 10),
		Nightly:    money.Must(18000, "USD"),
	})
	var overlap *domainpricing.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("err = %v, want *OverlapError", err)
	}
}

func TestCreatePeriodAllowsAdjacentAndOtherProperty(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	_, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("june: %v", err)
	}

	// Back to back with June's end.
	_, err = svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 30),
		End:        date(2025, time.July, 31),
		Nightly:    money.Must(18000, "USD"),
	})
	if err != nil {
		t.Fatalf("adjacent july: %v", err)
	}

	// Same dates on a different property never conflict.
	_, err = svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-2",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(9000, "USD"),
	})
	if err != nil {
		t.Fatalf("other property: %v", err)
	}
}

func TestCreatePeriodInvalidRange(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.CreatePeriod(context.Background(), CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 30),
		End:        date(2025, time.June, 1),
		Nightly:    money.Must(15000, "USD"),
	})
	if !errors.Is(err, domainpricing.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestCreatePeriodPublishesEvent(t *testing.T) {
	svc, catalog, sink := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)

	period, err := svc.CreatePeriod(context.Background(), CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	recorded := sink.Events()
	if len(recorded) != 1 {
		t.Fatalf("events = %d, want 1", len(recorded))
	}
	if recorded[0].EventName() != "pricing.period_created" {
		t.Fatalf("event name = %s", recorded[0].EventName())
	}
	if recorded[0].AggregateID() != string(period.ID) {
		t.Fatalf("aggregate id = %s, want %s", recorded[0].AggregateID(), period.ID)
	}
}

func TestUpdatePeriodExcludesSelfFromOverlapScan(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	june, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("june: %v", err)
	}
	_, err = svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.July, 1),
		End:        date(2025, time.July, 31),
		Nightly:    money.Must(18000, "USD"),
	})
	if err != nil {
		t.Fatalf("july: %v", err)
	}

	// Extending June into the free gap must pass even though the new range
	// overlaps June's own stored range.
	newEnd := date(2025, time.July, 1)
	updated, err := svc.UpdatePeriod(ctx, june.ID, UpdatePeriodParams{End: &newEnd})
	if err != nil {
		t.Fatalf("extend into gap: %v", err)
	}
	if !updated.Range.End.Equal(newEnd) {
		t.Fatalf("end = %v, want %v", updated.Range.End, newEnd)
	}

	// Extending into July must conflict with July, not with itself.
	tooFar := date(2025, time.July, 10)
	_, err = svc.UpdatePeriod(ctx, june.ID, UpdatePeriodParams{End: &tooFar})
	var overlap *domainpricing.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("err = %v, want *OverlapError", err)
	}
}

func TestUpdatePeriodPartialPatch(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	created, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Name:       "June",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rate := money.Must(16000, "USD")
	updated, err := svc.UpdatePeriod(ctx, created.ID, UpdatePeriodParams{Nightly: &rate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Nightly.Amount != 16000 {
		t.Fatalf("nightly = %d, want 16000", updated.Nightly.Amount)
	}
	if !updated.Range.Start.Equal(created.Range.Start) || !updated.Range.End.Equal(created.Range.End) {
		t.Fatal("range must be untouched by a rate-only patch")
	}
	if updated.Name != "June" {
		t.Fatalf("name = %q, want June", updated.Name)
	}
}

func TestUpdatePeriodUnknownID(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.UpdatePeriod(context.Background(), "missing", UpdatePeriodParams{})
	if !errors.Is(err, domainpricing.ErrPeriodNotFound) {
		t.Fatalf("err = %v, want ErrPeriodNotFound", err)
	}
}

func TestDeletePeriodIdempotent(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	created, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.DeletePeriod(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = svc.DeletePeriod(ctx, created.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}

	// The freed range is immediately insertable again.
	_, err = svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(12000, "USD"),
	})
	if err != nil {
		t.Fatalf("reinsert after delete: %v", err)
	}
}

func TestDeletePeriodsForProperty(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	for month := time.June; month <= time.August; month++ {
		_, err := svc.CreatePeriod(ctx, CreatePeriodParams{
			PropertyID: "prop-1",
			Start:      date(2025, month, 1),
			End:        date(2025, month, 28),
			Nightly:    money.Must(15000, "USD"),
		})
		if err != nil {
			t.Fatalf("month %v: %v", month, err)
		}
	}

	count, err := svc.DeletePeriodsForProperty(ctx, "prop-1")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	remaining, err := svc.PeriodsForProperty(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("remaining = %d, want 0", len(remaining))
	}
}

func TestPeriodsForPropertySortedByStart(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	months := []time.Month{time.August, time.June, time.July}
	for _, month := range months {
		_, err := svc.CreatePeriod(ctx, CreatePeriodParams{
			PropertyID: "prop-1",
			Start:      date(2025, month, 1),
			End:        date(2025, month, 28),
			Nightly:    money.Must(15000, "USD"),
		})
		if err != nil {
			t.Fatalf("month %v: %v", month, err)
		}
	}

	listed, err := svc.PeriodsForProperty(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("len = %d, want 3", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].Range.Start.Before(listed[i-1].Range.Start) {
			t.Fatalf("periods out of order at %d", i)
		}
	}
}

func TestQuoteStayOverlaysPeriods(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)
	ctx := context.Background()

	_, err := svc.CreatePeriod(ctx, CreatePeriodParams{
		PropertyID: "prop-1",
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 10),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	quote, err := svc.QuoteStay(ctx, "prop-1", date(2025, time.June, 8), date(2025, time.June, 15))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if want := int64(2*15000 + 5*10000); quote.Total.Amount != want {
		t.Fatalf("total = %d, want %d", quote.Total.Amount, want)
	}
	if quote.Nights != 7 || quote.PeriodNights != 2 {
		t.Fatalf("nights = %d, period nights = %d", quote.Nights, quote.PeriodNights)
	}
}

func TestQuoteStayUnknownProperty(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.QuoteStay(context.Background(), "ghost", date(2025, time.June, 1), date(2025, time.June, 5))
	if !errors.Is(err, properties.ErrNotFound) {
		t.Fatalf("err = %v, want properties.ErrNotFound", err)
	}
}

func TestQuoteStayInvalidRange(t *testing.T) {
	svc, catalog, _ := newFixture(t)
	seedProperty(t, catalog, "prop-1", 10000)

	_, err := svc.QuoteStay(context.Background(), "prop-1", date(2025, time.June, 5), date(2025, time.June, 5))
	if !errors.Is(err, domainpricing.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}
