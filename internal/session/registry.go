package session

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"sync"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/kv"
)

// DefaultProfile is used when a caller does not name a profile.
const DefaultProfile = "default"

// ErrListUnsupported is returned when the backing store cannot enumerate keys.
var ErrListUnsupported = errors.New("backing store cannot list keys")

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// NormalizeProfile returns DefaultProfile for an empty id and rejects ids
// that are not 1-64 letters, digits, '_' or '-'.
func NormalizeProfile(profile string) (string, error) {
	if profile == "" {
		return DefaultProfile, nil
	}
	if !profilePattern.MatchString(profile) {
		return "", apperrors.NewValidationError("profile", apperrors.ErrInvalidProfile)
	}
	return profile, nil
}

type registryEntry struct {
	mu    sync.Mutex
	store *Store
}

// Registry owns one Store per profile, loaded on first use.
type Registry struct {
	kv     kv.Store
	opts   Options
	stores sync.Map // profile -> *registryEntry
}

// NewRegistry creates a Registry whose stores share kv and opts.
func NewRegistry(store kv.Store, opts Options) *Registry {
	return &Registry{kv: store, opts: opts}
}

// Get returns the loaded Store for profile. Corrupt persisted data still
// yields a usable store with warnings; a storage failure is returned and
// the load is retried on the next call.
func (r *Registry) Get(ctx context.Context, profile string) (*Store, error) {
	profile, err := NormalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	value, _ := r.stores.LoadOrStore(profile, &registryEntry{})
	entry := value.(*registryEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.store != nil {
		return entry.store, nil
	}

	store := NewStore(r.kv, profile, r.opts)
	if _, _, err := store.Load(ctx); err != nil {
		var storageErr *apperrors.StorageError
		if errors.As(err, &storageErr) {
			store.Close()
			return nil, err
		}
	}
	entry.store = store
	return store, nil
}

// Profiles lists the profiles loaded so far.
func (r *Registry) Profiles() []string {
	var profiles []string
	r.stores.Range(func(key, value any) bool {
		entry := value.(*registryEntry)
		entry.mu.Lock()
		loaded := entry.store != nil
		entry.mu.Unlock()
		if loaded {
			profiles = append(profiles, key.(string))
		}
		return true
	})
	sort.Strings(profiles)
	return profiles
}

// PersistedProfiles lists every profile with state in the backing store,
// including profiles this process has not loaded.
func (r *Registry) PersistedProfiles(ctx context.Context) ([]string, error) {
	lister, ok := r.kv.(kv.Lister)
	if !ok {
		return nil, ErrListUnsupported
	}
	keys, err := lister.Keys(ctx, "")
	if err != nil {
		return nil, &apperrors.StorageError{Key: "*", Err: err}
	}
	seen := make(map[string]struct{})
	profiles := make([]string, 0, len(keys))
	for _, key := range keys {
		profile, ok := profileOf(key)
		if !ok {
			continue
		}
		if _, dup := seen[profile]; dup {
			continue
		}
		seen[profile] = struct{}{}
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)
	return profiles, nil
}

// Close ends the session of every loaded store.
func (r *Registry) Close() {
	r.stores.Range(func(_, value any) bool {
		entry := value.(*registryEntry)
		entry.mu.Lock()
		if entry.store != nil {
			entry.store.Close()
		}
		entry.mu.Unlock()
		return true
	})
}
