// FilePath: internal/fleetservice/fakes_test.go

// In-memory repository fakes backing the service tests. They mirror the
// postgres repos' contract: owner-scoped lookups report foreign rows as
// not found, duplicates as conflicts.
package fleetservice

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// fakeTx stages mutations and applies them on Commit, so a rolled back or
// failed transaction leaves the fakes untouched just like a real one.
type fakeTx struct {
	ops       []func()
	commitErr error
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	for _, op := range t.ops {
		op()
	}
	t.ops = nil
	return nil
}

func (t *fakeTx) Rollback() error {
	t.ops = nil
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return driver.RowsAffected(1), nil
}

// stageOrRun defers op onto the transaction when one is given, otherwise
// applies it immediately.
func stageOrRun(tx database.Transaction, op func()) {
	if staged, ok := tx.(*fakeTx); ok && staged != nil {
		staged.ops = append(staged.ops, op)
		return
	}
	op()
}

type fakeBase struct{}

func (fakeBase) BeginTx(ctx context.Context) (database.Transaction, error) {
	return &fakeTx{}, nil
}

type fakeUserRepo struct {
	fakeBase
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.NewConflictError("username or email already exists", nil)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string, tx database.Transaction) error {
	r.mu.Lock()
	_, ok := r.users[id]
	r.mu.Unlock()
	if !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.users, id)
	})
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSystemRepo struct {
	fakeBase
	mu      sync.Mutex
	systems map[string]*models.System
}

func newFakeSystemRepo() *fakeSystemRepo {
	return &fakeSystemRepo{systems: map[string]*models.System{}}
}

func (r *fakeSystemRepo) Create(ctx context.Context, system *models.System) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *system
	r.systems[system.ID] = &cp
	return nil
}

func (r *fakeSystemRepo) Get(ctx context.Context, id, ownerID string) (*models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.systems[id]; ok && s.OwnerID == ownerID {
		cp := *s
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("system not found", nil)
}

func (r *fakeSystemRepo) Update(ctx context.Context, system *models.System) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.systems[system.ID]; ok && s.OwnerID == system.OwnerID {
		cp := *system
		r.systems[system.ID] = &cp
		return nil
	}
	return errors.NewNotFoundError("system not found", nil)
}

func (r *fakeSystemRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.systems[id]; ok && s.OwnerID == ownerID {
		delete(r.systems, id)
		return nil
	}
	return errors.NewNotFoundError("system not found", nil)
}

func (r *fakeSystemRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.System{}
	for _, s := range r.systems {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSystemRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for id, s := range r.systems {
			if s.OwnerID == ownerID {
				delete(r.systems, id)
			}
		}
	})
	return nil
}

type fakeDeviceRepo struct {
	fakeBase
	mu      sync.Mutex
	devices map[string]*models.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[string]*models.Device{}}
}

func (r *fakeDeviceRepo) Create(ctx context.Context, device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if device.HardwareID != nil {
		for _, d := range r.devices {
			if d.HardwareID != nil && *d.HardwareID == *device.HardwareID {
				return errors.NewConflictError("hardware id already registered", nil)
			}
		}
	}
	cp := *device
	r.devices[device.ID] = &cp
	return nil
}

func (r *fakeDeviceRepo) Get(ctx context.Context, id, ownerID string) (*models.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.devices[id]; ok && d.OwnerID == ownerID {
		cp := *d
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("device not found", nil)
}

func (r *fakeDeviceRepo) Update(ctx context.Context, device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.devices[device.ID]; ok && d.OwnerID == device.OwnerID {
		cp := *device
		r.devices[device.ID] = &cp
		return nil
	}
	return errors.NewNotFoundError("device not found", nil)
}

func (r *fakeDeviceRepo) Delete(ctx context.Context, id, ownerID string, tx database.Transaction) error {
	r.mu.Lock()
	d, ok := r.devices[id]
	owned := ok && d.OwnerID == ownerID
	r.mu.Unlock()
	if !owned {
		return errors.NewNotFoundError("device not found", nil)
	}
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.devices, id)
	})
	return nil
}

func (r *fakeDeviceRepo) ListByOwner(ctx context.Context, ownerID string, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []*models.Device{}
	for _, d := range r.devices {
		if d.OwnerID == ownerID {
			cp := *d
			all = append(all, &cp)
		}
	}
	// Stable order so offset paging behaves like the SQL implementation.
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*models.Device{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeDeviceRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for id, d := range r.devices {
			if d.OwnerID == ownerID {
				delete(r.devices, id)
			}
		}
	})
	return nil
}

type fakeDeviceInputRepo struct {
	fakeBase
	mu     sync.Mutex
	inputs map[string]*models.DeviceInput
}

func newFakeDeviceInputRepo() *fakeDeviceInputRepo {
	return &fakeDeviceInputRepo{inputs: map[string]*models.DeviceInput{}}
}

func (r *fakeDeviceInputRepo) Create(ctx context.Context, input *models.DeviceInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *input
	r.inputs[input.ID] = &cp
	return nil
}

func (r *fakeDeviceInputRepo) Get(ctx context.Context, id, ownerID string) (*models.DeviceInput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.inputs[id]; ok && in.OwnerID == ownerID {
		cp := *in
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("device input not found", nil)
}

func (r *fakeDeviceInputRepo) Update(ctx context.Context, input *models.DeviceInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.inputs[input.ID]; ok && in.OwnerID == input.OwnerID {
		cp := *input
		r.inputs[input.ID] = &cp
		return nil
	}
	return errors.NewNotFoundError("device input not found", nil)
}

func (r *fakeDeviceInputRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.inputs[id]; ok && in.OwnerID == ownerID {
		delete(r.inputs, id)
		return nil
	}
	return errors.NewNotFoundError("device input not found", nil)
}

func (r *fakeDeviceInputRepo) ListByOwner(ctx context.Context, ownerID string, filters models.DeviceInputFilters) ([]*models.DeviceInput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.DeviceInput{}
	for _, in := range r.inputs {
		if in.OwnerID == ownerID {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDeviceInputRepo) ListAlertEnabled(ctx context.Context, deviceID, parameter string) ([]*models.DeviceInput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.DeviceInput{}
	for _, in := range r.inputs {
		if in.DeviceID == deviceID && in.Parameter == parameter && in.AlertEnabled {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDeviceInputRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for id, in := range r.inputs {
			if in.OwnerID == ownerID {
				delete(r.inputs, id)
			}
		}
	})
	return nil
}

type fakeNotificationRepo struct {
	fakeBase
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return errors.NewNotFoundError("notification not found", nil)
}

func (r *fakeNotificationRepo) DeleteByUser(ctx context.Context, userID string, tx database.Transaction) error {
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		kept := r.notifications[:0]
		for _, n := range r.notifications {
			if n.UserID != userID {
				kept = append(kept, n)
			}
		}
		r.notifications = kept
	})
	return nil
}

type fakeReadingRepo struct {
	fakeBase
	mu       sync.Mutex
	readings []*models.Reading
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{}
}

func (r *fakeReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reading
	r.readings = append(r.readings, &cp)
	return nil
}

func (r *fakeReadingRepo) ListByDevice(ctx context.Context, deviceID string, start, end time.Time, limit int) ([]*models.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Reading{}
	for _, rd := range r.readings {
		if rd.DeviceID != deviceID {
			continue
		}
		if !start.IsZero() && rd.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && rd.Timestamp.After(end) {
			continue
		}
		cp := *rd
		out = append(out, &cp)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	stageOrRun(tx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		kept := r.readings[:0]
		for _, rd := range r.readings {
			if rd.DeviceID != deviceID {
				kept = append(kept, rd)
			}
		}
		r.readings = kept
	})
	return nil
}

// fakeResetTokenRepo keeps one pending token per email and redeems each
// token at most once, matching the redis-backed implementation.
type fakeResetTokenRepo struct {
	mu        sync.Mutex
	byToken   map[string]string
	byEmail   map[string]string
	seq       int
	LastToken string
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{byToken: map[string]string{}, byEmail: map[string]string{}}
}

func (r *fakeResetTokenRepo) Issue(ctx context.Context, email string, ttl time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byEmail[email]; ok {
		delete(r.byToken, prev)
	}
	r.seq++
	token := fmt.Sprintf("tok-%d", r.seq)
	r.byToken[token] = email
	r.byEmail[email] = token
	r.LastToken = token
	return token, nil
}

func (r *fakeResetTokenRepo) Consume(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.byToken[token]
	if !ok {
		return "", errors.NewResetTokenError("invalid or expired reset token", nil)
	}
	delete(r.byToken, token)
	delete(r.byEmail, email)
	return email, nil
}
