package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubTourRepo struct {
	tours map[string]*domain.Tour
}

func newStubTourRepo() *stubTourRepo {
	return &stubTourRepo{tours: make(map[string]*domain.Tour)}
}

func (r *stubTourRepo) Create(_ context.Context, t *domain.Tour) error {
	clone := *t
	r.tours[t.ID] = &clone
	return nil
}

func (r *stubTourRepo) FindByID(_ context.Context, id string) (*domain.Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, domain.ErrTourNotFound
	}
	clone := *t
	clone.BookedBy = append([]string(nil), t.BookedBy...)
	return &clone, nil
}

func (r *stubTourRepo) List(_ context.Context) ([]*domain.Tour, error) {
	var out []*domain.Tour
	for _, t := range r.tours {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTourRepo) Search(_ context.Context, _ string) ([]*domain.Tour, error) {
	return r.List(context.Background())
}

// ReserveSeats mirrors the conditional update the Mongo repository issues:
// no mutation unless every precondition holds.
func (r *stubTourRepo) ReserveSeats(_ context.Context, tourID, accountID string, seats int, employeeShare float64) error {
	t, ok := r.tours[tourID]
	if !ok {
		return domain.ErrTourNotFound
	}
	if t.IsBookedBy(accountID) {
		return domain.ErrAlreadyBooked
	}
	if t.Count < seats {
		return domain.ErrInsufficientCapacity
	}
	t.Count -= seats
	t.Revenue += employeeShare
	t.BookedBy = append(t.BookedBy, accountID)
	return nil
}

func (r *stubTourRepo) ReleaseSeats(_ context.Context, tourID, accountID string, seats int, employeeShare float64) error {
	t, ok := r.tours[tourID]
	if !ok {
		return domain.ErrTourNotFound
	}
	t.Count += seats
	t.Revenue -= employeeShare
	kept := t.BookedBy[:0]
	for _, id := range t.BookedBy {
		if id != accountID {
			kept = append(kept, id)
		}
	}
	t.BookedBy = kept
	return nil
}

func (r *stubTourRepo) DeleteUnbooked(_ context.Context, tourID, ownerID string) error {
	t, ok := r.tours[tourID]
	if !ok {
		return domain.ErrTourNotFound
	}
	if t.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if len(t.BookedBy) > 0 {
		return domain.ErrTourHasBookings
	}
	delete(r.tours, tourID)
	return nil
}

type stubAccountRepo struct {
	bookingRefs map[string][]string
	revenue     map[string]float64
	carts       map[string][]domain.CartItem
	accounts    map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		bookingRefs: make(map[string][]string),
		revenue:     make(map[string]float64),
		carts:       make(map[string][]domain.CartItem),
		accounts:    make(map[string]*domain.Account),
	}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *a
	r.accounts[a.ID] = &clone
	return &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) AddBookingRef(_ context.Context, accountID, bookingID string) error {
	r.bookingRefs[accountID] = append(r.bookingRefs[accountID], bookingID)
	return nil
}

func (r *stubAccountRepo) RemoveBookingRef(_ context.Context, accountID, bookingID string) error {
	refs := r.bookingRefs[accountID]
	kept := refs[:0]
	for _, id := range refs {
		if id != bookingID {
			kept = append(kept, id)
		}
	}
	r.bookingRefs[accountID] = kept
	return nil
}

func (r *stubAccountRepo) AddOwnedTour(_ context.Context, accountID, tourID string) error {
	return nil
}

func (r *stubAccountRepo) RemoveOwnedTour(_ context.Context, accountID, tourID string) error {
	return nil
}

func (r *stubAccountRepo) AddRevenue(_ context.Context, accountID string, delta float64) error {
	r.revenue[accountID] += delta
	return nil
}

func (r *stubAccountRepo) AddCartItem(_ context.Context, accountID, tourID string) error {
	for i, item := range r.carts[accountID] {
		if item.TourID == tourID {
			r.carts[accountID][i].Quantity++
			return nil
		}
	}
	r.carts[accountID] = append(r.carts[accountID], domain.CartItem{TourID: tourID, Quantity: 1})
	return nil
}

func (r *stubAccountRepo) RemoveCartItem(_ context.Context, accountID, tourID string) error {
	items := r.carts[accountID]
	kept := items[:0]
	for _, item := range items {
		if item.TourID != tourID {
			kept = append(kept, item)
		}
	}
	r.carts[accountID] = kept
	return nil
}

type stubBookingRepo struct {
	bookings  map[string]*domain.Booking
	insertErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Insert(_ context.Context, b *domain.Booking) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) DeleteOwned(_ context.Context, id, userID string) error {
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type stubLedger struct {
	total float64
}

func (l *stubLedger) Add(_ context.Context, delta float64) error {
	l.total += delta
	return nil
}

func (l *stubLedger) Total(_ context.Context) (float64, error) {
	return l.total, nil
}

type stubCache struct {
	invalidated []string
}

func (c *stubCache) Get(_ context.Context, _ string, _ any) bool { return false }

func (c *stubCache) Set(_ context.Context, _ string, _ any, _ time.Duration) {}

func (c *stubCache) Invalidate(_ context.Context, keys ...string) {
	c.invalidated = append(c.invalidated, keys...)
}

type stubAudit struct {
	events []domain.BookingEvent
}

func (a *stubAudit) Enqueue(e domain.BookingEvent) {
	a.events = append(a.events, e)
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type bookingFixture struct {
	tours    *stubTourRepo
	accounts *stubAccountRepo
	bookings *stubBookingRepo
	ledger   *stubLedger
	cache    *stubCache
	audit    *stubAudit
	svc      *BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		tours:    newStubTourRepo(),
		accounts: newStubAccountRepo(),
		bookings: newStubBookingRepo(),
		ledger:   &stubLedger{},
		cache:    &stubCache{},
		audit:    &stubAudit{},
	}
	f.svc = NewBookingService(f.tours, f.accounts, f.bookings, f.ledger, f.cache, f.audit, 0.10, discardLogger)
	return f
}

func (f *bookingFixture) seedTour(id string, price float64, count int) {
	f.tours.tours[id] = &domain.Tour{
		ID:      id,
		Title:   "Coastal Trail",
		City:    "Lisbon",
		Price:   price,
		Count:   count,
		OwnerID: "emp_1",
	}
}

func bookingInput(tourID string, adults, children int) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		UserID:    "user_1",
		TourID:    tourID,
		Name:      "Ana Silva",
		Phone:     "+351900000001",
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Adults:    adults,
		Children:  children,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestBookingService_Create_Success(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)

	booking, err := f.svc.Create(context.Background(), bookingInput("tour_1", 2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.TotalCost != 200 {
		t.Errorf("expected total 200, got %v", booking.TotalCost)
	}
	if booking.AdminShare != 20 {
		t.Errorf("expected admin share 20, got %v", booking.AdminShare)
	}
	if booking.EmployeeShare != 180 {
		t.Errorf("expected employee share 180, got %v", booking.EmployeeShare)
	}

	tour := f.tours.tours["tour_1"]
	if tour.Count != 3 {
		t.Errorf("expected count 3 after booking 2 seats, got %d", tour.Count)
	}
	if !tour.IsBookedBy("user_1") {
		t.Error("expected user in booked_by")
	}
	if tour.Revenue != 180 {
		t.Errorf("expected tour revenue 180, got %v", tour.Revenue)
	}
	if f.ledger.total != 20 {
		t.Errorf("expected platform ledger 20, got %v", f.ledger.total)
	}
	if f.accounts.revenue["emp_1"] != 180 {
		t.Errorf("expected employee revenue 180, got %v", f.accounts.revenue["emp_1"])
	}
	if len(f.accounts.bookingRefs["user_1"]) != 1 {
		t.Errorf("expected 1 booking ref, got %d", len(f.accounts.bookingRefs["user_1"]))
	}
	if len(f.cache.invalidated) == 0 {
		t.Error("expected cache invalidation after booking")
	}
	if len(f.audit.events) != 1 || f.audit.events[0].Action != domain.AuditBookingCreated {
		t.Errorf("expected one created audit event, got %+v", f.audit.events)
	}
}

func TestBookingService_Create_ShareSumEqualsTotal(t *testing.T) {
	f := newBookingFixture()
	// Prices chosen so the 10% cut does not round cleanly.
	prices := []float64{33.35, 99.99, 0.01, 123.45}
	for i, price := range prices {
		id := string(rune('a' + i))
		f.seedTour(id, price, 10)

		in := bookingInput(id, 3, 1)
		booking, err := f.svc.Create(context.Background(), in)
		if err != nil {
			t.Fatalf("price %v: unexpected error: %v", price, err)
		}
		if booking.AdminShare+booking.EmployeeShare != booking.TotalCost {
			t.Errorf("price %v: shares leak: %v + %v != %v",
				price, booking.AdminShare, booking.EmployeeShare, booking.TotalCost)
		}
	}
}

func TestBookingService_Create_InsufficientCapacity(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 1)

	_, err := f.svc.Create(context.Background(), bookingInput("tour_1", 2, 0))
	if !errors.Is(err, domain.ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}

	tour := f.tours.tours["tour_1"]
	if tour.Count != 1 {
		t.Errorf("rejected booking must not change count, got %d", tour.Count)
	}
	if f.ledger.total != 0 || f.accounts.revenue["emp_1"] != 0 {
		t.Error("rejected booking must not move revenue")
	}
	if len(f.bookings.bookings) != 0 {
		t.Error("rejected booking must not create a ledger record")
	}
}

func TestBookingService_Create_ZeroCapacity(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 0)

	_, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0))
	if !errors.Is(err, domain.ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity for empty tour, got %v", err)
	}
}

func TestBookingService_Create_AlreadyBooked(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 10)

	if _, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0))
	if !errors.Is(err, domain.ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked, got %v", err)
	}

	if f.tours.tours["tour_1"].Count != 9 {
		t.Errorf("second attempt must not consume seats, got count %d", f.tours.tours["tour_1"].Count)
	}
	if len(f.bookings.bookings) != 1 {
		t.Errorf("expected exactly 1 booking, got %d", len(f.bookings.bookings))
	}
}

func TestBookingService_Create_TourNotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.Create(context.Background(), bookingInput("missing", 1, 0))
	if !errors.Is(err, domain.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestBookingService_Create_Validation(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)

	cases := []struct {
		name   string
		mutate func(*ports.CreateBookingInput)
	}{
		{"zero adults", func(in *ports.CreateBookingInput) { in.Adults = 0 }},
		{"negative children", func(in *ports.CreateBookingInput) { in.Children = -1 }},
		{"missing phone", func(in *ports.CreateBookingInput) { in.Phone = "" }},
		{"missing name", func(in *ports.CreateBookingInput) { in.Name = "" }},
		{"end before start", func(in *ports.CreateBookingInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
	}

	for _, tc := range cases {
		in := bookingInput("tour_1", 2, 0)
		tc.mutate(&in)
		if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	if f.tours.tours["tour_1"].Count != 5 {
		t.Error("validation failures must not touch the tour")
	}
}

func TestBookingService_Create_InsertFailure_ReleasesSeats(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)
	f.bookings.insertErr = errors.New("db unavailable")

	_, err := f.svc.Create(context.Background(), bookingInput("tour_1", 2, 0))
	if err == nil {
		t.Fatal("expected error when insert fails")
	}

	tour := f.tours.tours["tour_1"]
	if tour.Count != 5 {
		t.Errorf("compensation must restore count, got %d", tour.Count)
	}
	if tour.IsBookedBy("user_1") {
		t.Error("compensation must clear booked_by")
	}
	if tour.Revenue != 0 {
		t.Errorf("compensation must reverse tour revenue, got %v", tour.Revenue)
	}
	if f.ledger.total != 0 {
		t.Errorf("failed booking must not credit the ledger, got %v", f.ledger.total)
	}
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func TestBookingService_Cancel_RoundTrip(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)

	booking, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if f.tours.tours["tour_1"].Count != 4 {
		t.Fatalf("expected count 4 after booking, got %d", f.tours.tours["tour_1"].Count)
	}

	cancelled, err := f.svc.Cancel(context.Background(), "user_1", booking.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.ID != booking.ID {
		t.Errorf("cancel must return the cancelled booking")
	}

	tour := f.tours.tours["tour_1"]
	if tour.Count != 5 {
		t.Errorf("cancel must restore count to 5, got %d", tour.Count)
	}
	if tour.IsBookedBy("user_1") {
		t.Error("cancel must remove user from booked_by")
	}
	if tour.Revenue != 0 {
		t.Errorf("cancel must reverse tour revenue, got %v", tour.Revenue)
	}
	if f.ledger.total != 0 {
		t.Errorf("cancel must reverse platform revenue, got %v", f.ledger.total)
	}
	if f.accounts.revenue["emp_1"] != 0 {
		t.Errorf("cancel must reverse employee revenue, got %v", f.accounts.revenue["emp_1"])
	}
	if len(f.accounts.bookingRefs["user_1"]) != 0 {
		t.Error("cancel must prune the user's booking list")
	}

	// Scenario D: the seat is bookable again.
	if _, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0)); err != nil {
		t.Fatalf("re-booking after cancel failed: %v", err)
	}
}

func TestBookingService_Cancel_SecondCallNotFound(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)

	booking, _ := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0))

	if _, err := f.svc.Cancel(context.Background(), "user_1", booking.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	_, err := f.svc.Cancel(context.Background(), "user_1", booking.ID)
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("second cancel must return ErrBookingNotFound, got %v", err)
	}

	if f.tours.tours["tour_1"].Count != 5 {
		t.Errorf("double cancel must not over-restore seats, got %d", f.tours.tours["tour_1"].Count)
	}
}

func TestBookingService_Cancel_Forbidden(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)

	booking, _ := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0))

	_, err := f.svc.Cancel(context.Background(), "user_2", booking.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, ok := f.bookings.bookings[booking.ID]; !ok {
		t.Error("forbidden cancel must not delete the booking")
	}
}

func TestBookingService_Cancel_UnknownID(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.Cancel(context.Background(), "user_1", "nope")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListMine
// ---------------------------------------------------------------------------

func TestBookingService_ListMine(t *testing.T) {
	f := newBookingFixture()
	f.seedTour("tour_1", 100, 5)
	f.seedTour("tour_2", 50, 5)

	if _, err := f.svc.Create(context.Background(), bookingInput("tour_1", 1, 0)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), bookingInput("tour_2", 2, 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mine, err := f.svc.ListMine(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(mine))
	}

	other, _ := f.svc.ListMine(context.Background(), "user_2")
	if len(other) != 0 {
		t.Errorf("expected no bookings for other user, got %d", len(other))
	}
}
