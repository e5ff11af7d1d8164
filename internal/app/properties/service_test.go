package properties

import (
	"context"
	"errors"
	"testing"
	"time"

	apppricing "stayly/internal/app/pricing"
	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
	"stayly/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*Service, *apppricing.Service) {
	t.Helper()
	catalog := memory.NewPropertyRepository()
	pricing := &apppricing.Service{
		Periods: memory.NewPeriodRepository(),
		Catalog: catalog,
	}
	svc := &Service{
		Properties: catalog,
		Periods:    pricing,
		Clock:      func() time.Time { return date(2025, time.January, 15) },
	}
	return svc, pricing
}

func validCreateParams() CreateParams {
	return CreateParams{
		Host:        "host-1",
		Title:       "Sea view flat",
		Description: "Two bedrooms near the pier",
		Address:     domainproperties.Address{Line1: "1 Shore Rd", City: "Brighton", Country: "GB"},
		GuestsLimit: 4,
		BaseNightly: money.Must(10000, "USD"),
	}
}

func TestCreateAndFetch(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateParams())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.State != domainproperties.PropertyDraft {
		t.Fatalf("state = %s, want DRAFT", created.State)
	}

	fetched, err := svc.ByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if fetched.Title != "Sea view flat" {
		t.Fatalf("title = %q", fetched.Title)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{"empty title", func(p *CreateParams) { p.Title = "  " }, domainproperties.ErrTitleRequired},
		{"zero guests", func(p *CreateParams) { p.GuestsLimit = 0 }, domainproperties.ErrGuestsLimit},
		{"negative rate", func(p *CreateParams) { p.BaseNightly = money.Money{Amount: -1, Currency: "USD"} }, domainproperties.ErrBaseRate},
		{"no address", func(p *CreateParams) { p.Address = domainproperties.Address{} }, domainproperties.ErrAddressRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validCreateParams()
			tc.mutate(&params)
			if _, err := svc.Create(ctx, params); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateParams())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	limit := 6
	rate := money.Must(12000, "USD")
	updated, err := svc.Update(ctx, created.ID, UpdateParams{GuestsLimit: &limit, BaseNightly: &rate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.GuestsLimit != 6 || updated.BaseNightly.Amount != 12000 {
		t.Fatalf("patch not applied: limit = %d, rate = %d", updated.GuestsLimit, updated.BaseNightly.Amount)
	}
	if updated.Title != created.Title {
		t.Fatal("untouched fields must survive the patch")
	}
}

func TestDeleteCascadesPeriods(t *testing.T) {
	svc, pricing := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateParams())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = pricing.CreatePeriod(ctx, apppricing.CreatePeriodParams{
		PropertyID: created.ID,
		Start:      date(2025, time.June, 1),
		End:        date(2025, time.June, 30),
		Nightly:    money.Must(15000, "USD"),
	})
	if err != nil {
		t.Fatalf("period: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}

	orphans, err := pricing.PeriodsForProperty(ctx, created.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("orphans = %d, want 0", len(orphans))
	}

	// Deleting again reports nothing done.
	deleted, err = svc.Delete(ctx, created.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestByHost(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	for _, host := range []domainproperties.HostID{"host-1", "host-2", "host-1"} {
		params := validCreateParams()
		params.Host = host
		if _, err := svc.Create(ctx, params); err != nil {
			t.Fatalf("create for %s: %v", host, err)
		}
	}

	mine, err := svc.ByHost(ctx, "host-1")
	if err != nil {
		t.Fatalf("by host: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len = %d, want 2", len(mine))
	}
}
