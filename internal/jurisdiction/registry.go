package jurisdiction

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rgehrsitz/opentax/internal/domain"
	"github.com/rgehrsitz/opentax/internal/logging"
)

// Factory creates the calculator for a normalized code
type Factory func(code string) Calculator

// noIncomeTaxStates levy no tax on wage income
var noIncomeTaxStates = map[string]string{
	"AK": "Alaska",
	"FL": "Florida",
	"NH": "New Hampshire",
	"NV": "Nevada",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"WA": "Washington",
	"WY": "Wyoming",
}

// Registry resolves jurisdiction codes to calculators. Hand-coded
// calculators take precedence over the data file; codes found in neither
// resolve to a zero-tax placeholder, so Resolve never fails.
//
// Calculators are memoized per code. Two goroutines resolving the same new
// code at once may each build one; the first stored wins and both are
// equivalent. Register may run alongside Resolve.
type Registry struct {
	mu        sync.RWMutex // guards factories and cache misses
	factories map[string]Factory
	data      domain.JurisdictionDataSet
	cache     sync.Map // code -> Calculator
	logger    logging.Logger
}

// NewRegistry creates a registry with the built-in calculators and the given
// data set for everything else. data may be nil.
func NewRegistry(data domain.JurisdictionDataSet) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		data:      data,
		logger:    logging.NopLogger{},
	}

	r.Register("CA", func(string) Calculator { return NewCalifornia() })
	r.Register("NY", func(string) Calculator { return NewNewYork() })
	for code, name := range noIncomeTaxStates {
		name := name
		r.Register(code, func(code string) Calculator { return NewNoIncomeTax(code, name, "") })
	}

	return r
}

// SetLogger sets the logger; nil installs a no-op logger
func (r *Registry) SetLogger(logger logging.Logger) {
	r.logger = logging.OrNop(logger)
}

// Register adds or replaces a hand-coded calculator. Resolves that start
// after it returns use the new factory.
func (r *Registry) Register(code string, factory Factory) {
	code = domain.NormalizeJurisdictionCode(code)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[code] = factory
	r.cache.Delete(code)
}

// Resolve returns the calculator for a code, ignoring case and surrounding space
func (r *Registry) Resolve(code string) Calculator {
	code = domain.NormalizeJurisdictionCode(code)

	if calc, ok := r.cache.Load(code); ok {
		return calc.(Calculator)
	}

	// a miss builds under the read lock so Register cannot clear the cache
	// between create and store
	r.mu.RLock()
	defer r.mu.RUnlock()
	calc, _ := r.cache.LoadOrStore(code, r.create(code))
	return calc.(Calculator)
}

func (r *Registry) create(code string) Calculator {
	if factory, ok := r.factories[code]; ok {
		r.logger.Debugf("jurisdiction %s: using built-in calculator", code)
		return factory(code)
	}

	if jd, ok := r.data.Lookup(code); ok {
		r.logger.Debugf("jurisdiction %s: using data-driven calculator", code)
		return NewGeneric(code, jd)
	}

	r.logger.Warnf("jurisdiction %q has no tax data; using $0 placeholder", code)
	return NewNoIncomeTax(code, code, fmt.Sprintf("No tax data available for %s. Using $0 placeholder.", code))
}

// Codes lists every code that resolves to something other than the
// placeholder, sorted
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.factories)+len(r.data))
	for code := range r.factories {
		seen[code] = struct{}{}
	}
	for code := range r.data {
		seen[code] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
