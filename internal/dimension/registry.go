package dimension

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nktomer45/planboard/internal/domain"
)

var (
	ErrMemberNotFound  = errors.New("dimension member not found")
	ErrInvalidMember   = errors.New("dimension member requires a name and a code")
	ErrDuplicateMember = errors.New("dimension member already exists")
)

// Registry keeps the members of every generic dimension in memory, keyed by
// dimension kind ("products", "regions", ...). Members keep insertion order.
type Registry struct {
	mu      sync.RWMutex
	members map[string][]domain.DimensionMember
	newID   func() string
}

// NewRegistry creates a registry seeded with the given members. Seed members
// without an id get one generated.
func NewRegistry(seed map[string][]domain.DimensionMember) *Registry {
	r := &Registry{
		members: make(map[string][]domain.DimensionMember, len(seed)),
		newID:   func() string { return uuid.NewString() },
	}

	for kind, members := range seed {
		kind = normalizeKind(kind)
		list := make([]domain.DimensionMember, 0, len(members))
		for _, m := range members {
			if m.ID == "" {
				m.ID = r.newID()
			}
			list = append(list, m)
		}
		r.members[kind] = list
	}

	return r
}

// Kinds lists the known dimension kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.members))
	for k := range r.members {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	return kinds
}

// List returns a copy of the members of kind. Unknown kinds are empty.
func (r *Registry) List(kind string) []domain.DimensionMember {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.members[normalizeKind(kind)]
	out := make([]domain.DimensionMember, len(src))
	copy(out, src)

	return out
}

// Names returns the member names of kind in insertion order.
func (r *Registry) Names(kind string) []string {
	members := r.List(kind)
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

// Add validates and appends a new member to kind.
func (r *Registry) Add(kind, name, code string) (domain.DimensionMember, error) {
	kind = normalizeKind(kind)
	m, err := validate(name, code)
	if err != nil {
		return domain.DimensionMember{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkDuplicate(r.members[kind], m, ""); err != nil {
		return domain.DimensionMember{}, err
	}

	m.ID = r.newID()
	r.members[kind] = append(r.members[kind], m)

	return m, nil
}

// Update replaces name and code of an existing member.
func (r *Registry) Update(kind, id, name, code string) (domain.DimensionMember, error) {
	kind = normalizeKind(kind)
	m, err := validate(name, code)
	if err != nil {
		return domain.DimensionMember{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.members[kind]
	i := indexOf(list, id)
	if i < 0 {
		return domain.DimensionMember{}, fmt.Errorf("%w: %s/%s", ErrMemberNotFound, kind, id)
	}
	if err := checkDuplicate(list, m, id); err != nil {
		return domain.DimensionMember{}, err
	}

	m.ID = id
	list[i] = m

	return m, nil
}

// Delete removes a member from kind.
func (r *Registry) Delete(kind, id string) error {
	kind = normalizeKind(kind)

	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.members[kind]
	i := indexOf(list, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", ErrMemberNotFound, kind, id)
	}
	r.members[kind] = append(list[:i:i], list[i+1:]...)

	return nil
}

func validate(name, code string) (domain.DimensionMember, error) {
	m := domain.DimensionMember{
		Name: strings.TrimSpace(name),
		Code: strings.TrimSpace(code),
	}
	if m.Name == "" || m.Code == "" {
		return m, ErrInvalidMember
	}
	return m, nil
}

// checkDuplicate compares names and codes case-insensitively, skipping the
// member being edited.
func checkDuplicate(list []domain.DimensionMember, m domain.DimensionMember, skipID string) error {
	for _, existing := range list {
		if existing.ID == skipID {
			continue
		}
		if strings.EqualFold(existing.Name, m.Name) {
			return fmt.Errorf("%w: name %q", ErrDuplicateMember, m.Name)
		}
		if strings.EqualFold(existing.Code, m.Code) {
			return fmt.Errorf("%w: code %q", ErrDuplicateMember, m.Code)
		}
	}
	return nil
}

func indexOf(list []domain.DimensionMember, id string) int {
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
