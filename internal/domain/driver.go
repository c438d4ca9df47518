package domain

// Scope selects the subset of the ledger a listing or delete operates over:
// a single driver's records, or everything.
type Scope string

// ScopeAll is the scope covering every driver's records.
const ScopeAll Scope = ""

// DriverScope returns the scope covering a single driver's records.
func DriverScope(driver string) Scope { return Scope(driver) }

// All reports whether the scope covers every driver.
func (s Scope) All() bool { return s == ScopeAll }

// Driver returns the driver name for a single-driver scope, or "" for all.
func (s Scope) Driver() string { return string(s) }

// DriverSet is the fixed, closed set of drivers records may be logged for.
// No other value is ever persisted. Order is preserved: listings and exports
// present drivers in the order the set was configured.
type DriverSet struct {
	names []string
	index map[string]bool
}

// NewDriverSet builds a DriverSet from the configured driver names,
// dropping duplicates while keeping first-seen order.
func NewDriverSet(names []string) DriverSet {
	set := DriverSet{index: make(map[string]bool, len(names))}
	for _, name := range names {
		if name == "" || set.index[name] {
			continue
		}
		set.index[name] = true
		set.names = append(set.names, name)
	}
	return set
}

// Contains reports whether name is a known driver.
func (d DriverSet) Contains(name string) bool { return d.index[name] }

// Names returns the drivers in configured order. The returned slice is a
// copy; callers may not mutate the set through it.
func (d DriverSet) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}
