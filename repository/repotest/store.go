// Package repotest provides an in-memory repository.Store for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/models/parcel"
	"parcel-delivery/models/payment"
	"parcel-delivery/models/rider"
	"parcel-delivery/models/tracking"
	"parcel-delivery/models/user"
	"parcel-delivery/repository"
)

// Store keeps every collection in maps guarded by one mutex. WithTransaction
// snapshots the maps and restores them when the function fails.
type Store struct {
	mu sync.Mutex

	ParcelDocs   map[primitive.ObjectID]parcel.Parcel
	UserDocs     map[primitive.ObjectID]user.User
	RiderDocs    map[primitive.ObjectID]rider.Rider
	PaymentDocs  map[primitive.ObjectID]payment.Payment
	TrackingDocs []tracking.Event

	// Failures makes the named operation (e.g. "riders.UpdateWorkStatus") return the error.
	Failures map[string]error
}

func New() *Store {
	return &Store{
		ParcelDocs:  map[primitive.ObjectID]parcel.Parcel{},
		UserDocs:    map[primitive.ObjectID]user.User{},
		RiderDocs:   map[primitive.ObjectID]rider.Rider{},
		PaymentDocs: map[primitive.ObjectID]payment.Payment{},
		Failures:    map[string]error{},
	}
}

func (s *Store) Parcels() repository.ParcelRepository     { return parcels{s} }
func (s *Store) Users() repository.UserRepository         { return users{s} }
func (s *Store) Riders() repository.RiderRepository       { return riders{s} }
func (s *Store) Payments() repository.PaymentRepository   { return payments{s} }
func (s *Store) Trackings() repository.TrackingRepository { return trackings{s} }

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	parcels   map[primitive.ObjectID]parcel.Parcel
	users     map[primitive.ObjectID]user.User
	riders    map[primitive.ObjectID]rider.Rider
	payments  map[primitive.ObjectID]payment.Payment
	trackings []tracking.Event
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		parcels:   copyMap(s.ParcelDocs),
		users:     copyMap(s.UserDocs),
		riders:    copyMap(s.RiderDocs),
		payments:  copyMap(s.PaymentDocs),
		trackings: append([]tracking.Event(nil), s.TrackingDocs...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ParcelDocs = snap.parcels
	s.UserDocs = snap.users
	s.RiderDocs = snap.riders
	s.PaymentDocs = snap.payments
	s.TrackingDocs = snap.trackings
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Fail makes op return err until cleared with Fail(op, nil).
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.Failures, op)
		return
	}
	s.Failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.Failures[op]
}

// AddUser inserts u directly, assigning an id when missing.
func (s *Store) AddUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.UserDocs[u.ID] = u
	return u
}

func (s *Store) AddParcel(p parcel.Parcel) parcel.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.ParcelDocs[p.ID] = p
	return p
}

func (s *Store) AddRider(r rider.Rider) rider.Rider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.RiderDocs[r.ID] = r
	return r
}

func (s *Store) Parcel(id primitive.ObjectID) (parcel.Parcel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ParcelDocs[id]
	return p, ok
}

func (s *Store) Rider(id primitive.ObjectID) (rider.Rider, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.RiderDocs[id]
	return r, ok
}

func (s *Store) User(email string) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.UserDocs {
		if u.Email == email {
			return u, true
		}
	}
	return user.User{}, false
}

func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.PaymentDocs)
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.UserDocs)
}

func (s *Store) Events(trackingID string) []tracking.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tracking.Event
	for _, e := range s.TrackingDocs {
		if e.TrackingID == trackingID {
			out = append(out, e)
		}
	}
	return out
}

type parcels struct{ s *Store }

func (r parcels) List(_ context.Context, f repository.ParcelFilter) ([]parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.List"); err != nil {
		return nil, err
	}
	out := []parcel.Parcel{}
	for _, p := range r.s.ParcelDocs {
		if f.CreatedBy != "" && p.CreatedBy != f.CreatedBy {
			continue
		}
		if f.PaymentStatus != "" && string(p.PaymentStatus) != f.PaymentStatus {
			continue
		}
		if f.DeliveryStatus != "" && string(p.DeliveryStatus) != f.DeliveryStatus {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r parcels) FindByID(_ context.Context, id primitive.ObjectID) (*parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.FindByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.ParcelDocs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r parcels) Create(_ context.Context, p *parcel.Parcel) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.Create"); err != nil {
		return primitive.NilObjectID, err
	}
	p.ID = primitive.NewObjectID()
	r.s.ParcelDocs[p.ID] = *p
	return p.ID, nil
}

func (r parcels) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.ParcelDocs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.ParcelDocs, id)
	return nil
}

func (r parcels) AssignRider(_ context.Context, id primitive.ObjectID, a parcel.Assignment) error {
	return r.update("parcels.AssignRider", id, func(p *parcel.Parcel) bool {
		at := a.AssignedAt
		p.DeliveryStatus = parcel.DeliveryStatusRiderAssigned
		p.AssignedRiderID = a.RiderID
		p.AssignedRiderEmail = a.RiderEmail
		p.AssignedRiderName = a.RiderName
		p.AssignedAt = &at
		return true
	})
}

func (r parcels) UpdateDeliveryStatus(_ context.Context, id primitive.ObjectID, from, to parcel.DeliveryStatus, at time.Time) error {
	return r.update("parcels.UpdateDeliveryStatus", id, func(p *parcel.Parcel) bool {
		if from != "" && p.DeliveryStatus != from {
			return false
		}
		p.DeliveryStatus = to
		switch to {
		case parcel.DeliveryStatusInTransit:
			p.PickedAt = &at
		case parcel.DeliveryStatusDelivered, parcel.DeliveryStatusServiceCenterDelivered:
			p.DeliveredAt = &at
		}
		return true
	})
}

func (r parcels) MarkPaid(_ context.Context, id primitive.ObjectID) error {
	return r.update("parcels.MarkPaid", id, func(p *parcel.Parcel) bool {
		if p.PaymentStatus == parcel.PaymentStatusPaid {
			return false
		}
		p.PaymentStatus = parcel.PaymentStatusPaid
		return true
	})
}

func (r parcels) Cashout(_ context.Context, id primitive.ObjectID, at time.Time) error {
	return r.update("parcels.Cashout", id, func(p *parcel.Parcel) bool {
		p.CashoutStatus = parcel.CashoutStatusCashedOut
		p.CashedOutAt = &at
		return true
	})
}

func (r parcels) update(op string, id primitive.ObjectID, apply func(p *parcel.Parcel) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return err
	}
	p, ok := r.s.ParcelDocs[id]
	if !ok || !apply(&p) {
		return repository.ErrNotFound
	}
	r.s.ParcelDocs[id] = p
	return nil
}

func (r parcels) CountByDeliveryStatus(_ context.Context) ([]parcel.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.CountByDeliveryStatus"); err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, p := range r.s.ParcelDocs {
		counts[string(p.DeliveryStatus)]++
	}
	out := []parcel.StatusCount{}
	for status, n := range counts {
		out = append(out, parcel.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r parcels) ListByRider(_ context.Context, email string, statuses []parcel.DeliveryStatus) ([]parcel.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("parcels.ListByRider"); err != nil {
		return nil, err
	}
	out := []parcel.Parcel{}
	for _, p := range r.s.ParcelDocs {
		if p.AssignedRiderEmail != email {
			continue
		}
		for _, status := range statuses {
			if p.DeliveryStatus == status {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type users struct{ s *Store }

func (r users) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.FindByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.UserDocs {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r users) Create(_ context.Context, u *user.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return primitive.NilObjectID, err
	}
	for _, existing := range r.s.UserDocs {
		if existing.Email == u.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	r.s.UserDocs[u.ID] = *u
	return u.ID, nil
}

func (r users) TouchLastLogin(_ context.Context, email string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.TouchLastLogin"); err != nil {
		return err
	}
	for id, u := range r.s.UserDocs {
		if u.Email == email {
			u.LastLogIn = at
			r.s.UserDocs[id] = u
		}
	}
	return nil
}

func (r users) SearchByEmail(_ context.Context, query string, limit int64) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.SearchByEmail"); err != nil {
		return nil, err
	}
	out := []user.User{}
	q := strings.ToLower(query)
	for _, u := range r.s.UserDocs {
		if strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r users) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.UpdateRole"); err != nil {
		return err
	}
	u, ok := r.s.UserDocs[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	r.s.UserDocs[id] = u
	return nil
}

func (r users) UpdateRoleByEmail(_ context.Context, email, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.UpdateRoleByEmail"); err != nil {
		return err
	}
	for id, u := range r.s.UserDocs {
		if u.Email == email {
			u.Role = role
			r.s.UserDocs[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

type riders struct{ s *Store }

func (r riders) Create(_ context.Context, rd *rider.Rider) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("riders.Create"); err != nil {
		return primitive.NilObjectID, err
	}
	rd.ID = primitive.NewObjectID()
	r.s.RiderDocs[rd.ID] = *rd
	return rd.ID, nil
}

func (r riders) List(_ context.Context, f repository.RiderFilter) ([]rider.Rider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("riders.List"); err != nil {
		return nil, err
	}
	out := []rider.Rider{}
	for _, rd := range r.s.RiderDocs {
		if f.District != "" && rd.District != f.District {
			continue
		}
		if f.Status != "" && rd.Status != f.Status {
			continue
		}
		out = append(out, rd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r riders) FindByID(_ context.Context, id primitive.ObjectID) (*rider.Rider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("riders.FindByID"); err != nil {
		return nil, err
	}
	rd, ok := r.s.RiderDocs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rd, nil
}

func (r riders) UpdateStatus(_ context.Context, id primitive.ObjectID, status rider.Status) error {
	return r.update("riders.UpdateStatus", id, func(rd *rider.Rider) { rd.Status = status })
}

func (r riders) UpdateWorkStatus(_ context.Context, id primitive.ObjectID, status rider.WorkStatus) error {
	return r.update("riders.UpdateWorkStatus", id, func(rd *rider.Rider) { rd.WorkStatus = status })
}

func (r riders) update(op string, id primitive.ObjectID, apply func(rd *rider.Rider)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(op); err != nil {
		return err
	}
	rd, ok := r.s.RiderDocs[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(&rd)
	r.s.RiderDocs[id] = rd
	return nil
}

type payments struct{ s *Store }

func (r payments) Create(_ context.Context, p *payment.Payment) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.Create"); err != nil {
		return primitive.NilObjectID, err
	}
	p.ID = primitive.NewObjectID()
	r.s.PaymentDocs[p.ID] = *p
	return p.ID, nil
}

func (r payments) List(_ context.Context, email string) ([]payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.List"); err != nil {
		return nil, err
	}
	out := []payment.Payment{}
	for _, p := range r.s.PaymentDocs {
		if email != "" && p.Email != email {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

type trackings struct{ s *Store }

func (r trackings) Append(_ context.Context, e *tracking.Event) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("trackings.Append"); err != nil {
		return primitive.NilObjectID, err
	}
	e.ID = primitive.NewObjectID()
	r.s.TrackingDocs = append(r.s.TrackingDocs, *e)
	return e.ID, nil
}

func (r trackings) ListByTrackingID(_ context.Context, trackingID string) ([]tracking.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("trackings.ListByTrackingID"); err != nil {
		return nil, err
	}
	out := []tracking.Event{}
	for _, e := range r.s.TrackingDocs {
		if e.TrackingID == trackingID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
