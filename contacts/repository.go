package contacts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository owns the authoritative contact collection and its persistence.
//
// A Repository starts in StateUninitialized. Load must complete before any
// read or write; until then every operation returns ErrorCodeNotLoaded so an
// empty in-memory collection is never mistaken for (or saved over) the
// persisted one.
type Repository struct {
	mu sync.RWMutex

	store      Store
	namespace  string
	now        func() time.Time
	newID      func() string
	log        *zap.Logger
	onPersist  func(error)
	state      State
	contacts   []Contact
	persistErr error
}

// Option configures a Repository.
type Option func(*Repository)

// WithNamespace sets the storage namespace. Empty values are ignored.
func WithNamespace(namespace string) Option {
	return func(r *Repository) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the contact id generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// WithLogger sets the repository logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// WithPersistErrorHandler registers fn to receive persistence failures after
// a mutation has been applied in memory. fn runs while the repository lock is
// held and must not call back into the Repository.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(r *Repository) {
		r.onPersist = fn
	}
}

// New returns an uninitialized Repository backed by store.
func New(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:     store,
		namespace: DefaultNamespace,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       zap.NewNop(),
		state:     StateUninitialized,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the storage namespace.
func (r *Repository) Namespace() string {
	return r.namespace
}

// State returns the lifecycle state.
func (r *Repository) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// PersistErr returns the last persistence failure, or nil if the most recent
// save succeeded.
func (r *Repository) PersistErr() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.persistErr
}

// Load reads the persisted collection and moves the repository to
// StateLoaded. A missing record yields an empty collection. On failure the
// repository stays uninitialized. Load on a loaded repository is a no-op.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateLoaded {
		return nil
	}
	if r.store == nil {
		return &Error{Code: ErrorCodeStore, Message: "store not configured"}
	}

	data, err := r.store.Load(ctx, r.namespace)
	switch {
	case errors.Is(err, ErrNoRecord):
		r.contacts = []Contact{}
	case err != nil:
		return &Error{Code: ErrorCodeStore, Message: fmt.Sprintf("reading %q failed: %v", r.namespace, err)}
	default:
		loaded, err := DecodeSnapshot(data)
		if err != nil {
			return &Error{Code: ErrorCodeStore, Message: err.Error()}
		}
		r.contacts = loaded
	}

	r.state = StateLoaded
	r.log.Debug("contacts loaded",
		zap.String("namespace", r.namespace),
		zap.Int("count", len(r.contacts)),
	)
	return nil
}

// Create appends a new contact with a fresh id and CreatedAt.
//
// No duplicate detection is performed; two contacts may share names and
// email addresses.
func (r *Repository) Create(ctx context.Context, draft Draft) (Contact, error) {
	if err := draft.Validate(); err != nil {
		return Contact{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireLoaded(); err != nil {
		return Contact{}, err
	}

	id, err := r.uniqueID()
	if err != nil {
		return Contact{}, err
	}
	contact := Contact{
		ID:        id,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Tags:      cloneTags(draft.Tags),
		CreatedAt: r.now().UTC(),
	}
	r.contacts = append(r.contacts, contact)
	r.log.Debug("contact created", zap.String("id", id))

	r.persist(ctx)
	return contact.Clone(), nil
}

// Update merges changes into the contact with id. ID and CreatedAt are never
// modified. An unknown id returns ErrorCodeNotFound and changes nothing.
func (r *Repository) Update(ctx context.Context, id string, changes Changes) (Contact, error) {
	if err := changes.Validate(); err != nil {
		return Contact{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireLoaded(); err != nil {
		return Contact{}, err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return Contact{}, notFound(id)
	}
	changes.apply(&r.contacts[idx])
	r.log.Debug("contact updated", zap.String("id", id))

	r.persist(ctx)
	return r.contacts[idx].Clone(), nil
}

// Delete removes the contact with id, keeping the relative order of the
// remaining contacts. An unknown id returns ErrorCodeNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireLoaded(); err != nil {
		return err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return notFound(id)
	}
	r.contacts = append(r.contacts[:idx:idx], r.contacts[idx+1:]...)
	r.log.Debug("contact deleted", zap.String("id", id))

	r.persist(ctx)
	return nil
}

// Get returns the contact with id.
func (r *Repository) Get(id string) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.requireLoaded(); err != nil {
		return Contact{}, err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return Contact{}, notFound(id)
	}
	return r.contacts[idx].Clone(), nil
}

// List returns a snapshot of all contacts in insertion order.
func (r *Repository) List() ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.requireLoaded(); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

// AllTags returns every distinct tag across all contacts, sorted ascending.
func (r *Repository) AllTags() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.requireLoaded(); err != nil {
		return nil, err
	}
	return DistinctTags(r.contacts), nil
}

// ContactsByTag returns the contacts carrying tag, in list order.
func (r *Repository) ContactsByTag(tag string) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.requireLoaded(); err != nil {
		return nil, err
	}

	out := make([]Contact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		if contact.HasTag(tag) {
			out = append(out, contact.Clone())
		}
	}
	return out, nil
}

func (r *Repository) requireLoaded() error {
	if r.state != StateLoaded {
		return &Error{Code: ErrorCodeNotLoaded, Message: "call Load before using the repository"}
	}
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) uniqueID() (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id := r.newID()
		if id != "" && r.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("contacts: could not generate a unique id")
}

func (r *Repository) snapshot() []Contact {
	out := make([]Contact, len(r.contacts))
	for i, contact := range r.contacts {
		out[i] = contact.Clone()
	}
	return out
}

// persist writes the whole collection. Failures never undo the in-memory
// mutation; they are logged, handed to the persist handler and kept until the
// next successful save.
func (r *Repository) persist(ctx context.Context) {
	err := r.save(ctx)
	r.persistErr = err
	if err == nil {
		return
	}
	r.log.Warn("persisting contacts failed",
		zap.String("namespace", r.namespace),
		zap.Error(err),
	)
	if r.onPersist != nil {
		r.onPersist(err)
	}
}

func (r *Repository) save(ctx context.Context) error {
	data, err := EncodeSnapshot(r.contacts)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, r.namespace, data); err != nil {
		return fmt.Errorf("contacts: saving %q failed: %w", r.namespace, err)
	}
	return nil
}

func notFound(id string) error {
	return &Error{Code: ErrorCodeNotFound, Message: fmt.Sprintf("contact %q not found", id)}
}
