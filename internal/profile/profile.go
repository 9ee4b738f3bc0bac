// Package profile maps confirmed gesture actions to the keys a specific game
// expects. Profiles are fixed at configuration time; exactly one is active.
package profile

import (
	"errors"
	"sort"
	"sync"

	"github.com/ayusman/kathak/internal/gesture"
)

// ErrNotFound is returned when a requested profile is not registered.
var ErrNotFound = errors.New("profile not found")

// Profile is a named mapping from action to an abstract key identifier.
// Key identifiers are names like "left", "space", or single characters; the
// injection backend decides how to press them.
type Profile struct {
	ID   string
	Name string
	Keys map[gesture.Action]string
}

// Key looks up the key for an action. The second return is false when the
// profile defines no mapping, which downstream treats as a no-op.
func (p *Profile) Key(action gesture.Action) (string, bool) {
	if p == nil {
		return "", false
	}
	key, ok := p.Keys[action]
	return key, ok
}

// Registry holds the profile table and the active selection. Switching the
// active profile is an atomic swap; it never touches classifier or
// stabilizer state.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	active   string
}

// NewRegistry creates an empty registry with no active profile.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
	}
}

// Add registers a profile, replacing any existing profile with the same name.
// The first profile added becomes active.
func (r *Registry) Add(p *Profile) {
	if p == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.Name] = p
	if r.active == "" {
		r.active = p.Name
	}
}

// Remove unregisters a profile by name. Removing the active profile leaves
// no active selection.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, name)
	if r.active == name {
		r.active = ""
	}
}

// Get returns a profile by name.
func (r *Registry) Get(name string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns all registered profiles sorted by name.
func (r *Registry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// SetActive switches the active profile. Unknown names are rejected so a
// typo cannot silently disable injection.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[name]; !ok {
		return ErrNotFound
	}
	r.active = name
	return nil
}

// Active returns the active profile, or nil if none is selected.
func (r *Registry) Active() *Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[r.active]
}

// ActiveName returns the name of the active profile, or "".
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Map resolves an action through the active profile. An unknown profile or
// unmapped action yields no key: the action is dropped, never an error.
func (r *Registry) Map(action gesture.Action) (string, bool) {
	return r.Active().Key(action)
}

// Builtins returns the stock game profiles.
func Builtins() []*Profile {
	return []*Profile{
		{
			Name: "Subway Surfers",
			Keys: map[gesture.Action]string{
				gesture.ActionLeft:   "left",
				gesture.ActionRight:  "right",
				gesture.ActionJump:   "up",
				gesture.ActionDuck:   "down",
				gesture.ActionSelect: "space",
			},
		},
		{
			Name: "Temple Run",
			Keys: map[gesture.Action]string{
				gesture.ActionLeft:   "a",
				gesture.ActionRight:  "d",
				gesture.ActionJump:   "w",
				gesture.ActionDuck:   "s",
				gesture.ActionSelect: "space",
			},
		},
	}
}
