package video_filer

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/video-filer/generic"
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

// A MatchFunc returns a reference for a URL it recognises, or an error explaining why it doesn't.
type MatchFunc = func(string) (*VideoReference, error)

// A Provider matches any URL it knows how to handle, giving a VideoReference that a Resolver for the same
// Platform can resolve.
type Provider struct {
	Name     string
	Platform Platform
	Match    MatchFunc
	// Priority of the matcher, lower (including negative) means matching earlier.
	Priority int16
}

func (p Provider) WithName(name string) Provider {
	p.Name = name
	return p
}

func (p Provider) WithPriority(priority int16) Provider {
	p.Priority = priority
	return p
}

// match runs the MatchFunc, only accepting references to the Provider's own Platform.
func (p *Provider) match(s string) (*Match, error) {
	ref, err := p.Match(s)
	switch {
	case err != nil:
		return nil, err
	case ref == nil:
		return nil, fmt.Errorf("no match")
	case ref.Platform != p.Platform:
		return nil, fmt.Errorf("%w: got %v, want %v", ErrPlatformMismatch, ref.Platform, p.Platform)
	}
	return &Match{ProviderName: p.Name, Reference: *ref}, nil
}

// A Match is the result of a Provider successfully matching a URL.
type Match struct {
	ProviderName string
	Reference    VideoReference
}

// A ProviderRegistry is a collection of Provider instances which can be used to try to match URLs.
type ProviderRegistry struct {
	providers   []*Provider
	providerMap map[string]*Provider
}

// Add registers a Provider with the ProviderRegistry. Provider.Name, Provider.Platform and Provider.Match must be set,
// and Provider.Name must be unique within the ProviderRegistry.
func (r *ProviderRegistry) Add(p Provider) error {
	if r.providerMap == nil {
		r.providerMap = make(map[string]*Provider)
	}
	if p.Name == "" || p.Platform == PlatformUnknown || p.Match == nil {
		return ErrInvalidProvider
	}
	if _, ok := r.providerMap[p.Name]; ok {
		return ErrDuplicateProvider
	}
	r.providerMap[p.Name] = &p
	r.providers = append(r.providers, r.providerMap[p.Name])
	r.sortByPriority()
	return nil
}

// GetPriority gets the priority of the named Provider. If ErrUnknownProvider is returned, the returned priority is the
// default priority.
func (r *ProviderRegistry) GetPriority(name string) (int16, error) {
	if p, ok := r.providerMap[name]; ok {
		return p.Priority, nil
	} else {
		return PriorityDefault, ErrUnknownProvider
	}
}

// List returns the names of registered providers in priority order.
func (r *ProviderRegistry) List() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	return names
}

// Match a string against each Provider in priority order. The first match wins; if nothing matches the error is a
// *NotRecognizedError carrying every provider's reason.
func (r *ProviderRegistry) Match(s string) (*Match, error) {
	var reasons error
	for _, p := range r.providers {
		m, err := p.match(s)
		if err == nil {
			return m, nil
		}
		reasons = multierror.Append(reasons, multierror.Prefix(err, fmt.Sprintf("[%v]", p.Name)))
	}
	return nil, &NotRecognizedError{URL: s, Reasons: reasons}
}

// MatchWith will attempt to match a string against a specific provider.
func (r *ProviderRegistry) MatchWith(name string, s string) (*Match, error) {
	p, ok := r.providerMap[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	m, err := p.match(s)
	if err != nil {
		return nil, &NotRecognizedError{URL: s, Reasons: err}
	}
	return m, nil
}

// MustAdd wraps Add but panics if there is an error.
func (r *ProviderRegistry) MustAdd(p Provider) {
	generic.Must(r.Add(p))
}

// SetPriority adjust the priority of a named Provider.
func (r *ProviderRegistry) SetPriority(name string, priority int16) error {
	if p, ok := r.providerMap[name]; ok {
		p.Priority = priority
		r.sortByPriority()
		return nil
	} else {
		return ErrUnknownProvider
	}
}

// Equal priorities keep registration order.
func (r *ProviderRegistry) sortByPriority() {
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority < r.providers[j].Priority
	})
}

var DefaultProviderRegistry ProviderRegistry
