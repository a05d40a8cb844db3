package imports

// SourceUnit is a single source file of a compilation.
type SourceUnit struct {
	// Path is the canonical path, unique within a SourceSet.
	Path string `json:"path"`
	// Name is the source-unit name the compiler knows the file by.
	Name    string `json:"name"`
	Content string `json:"content"`
}

// SourceSet is the result of import resolution: units keyed by canonical path, indexed by name.
// The entry unit is stored under the requested file name.
type SourceSet struct {
	entry *SourceUnit
	units map[string]*SourceUnit
	names map[string]*SourceUnit
	order []*SourceUnit
}

func NewSourceSet(fileName, entryText string) *SourceSet {
	s := &SourceSet{
		units: make(map[string]*SourceUnit),
		names: make(map[string]*SourceUnit),
	}
	s.entry = &SourceUnit{Path: fileName, Name: fileName, Content: entryText}
	s.Add(s.entry)
	return s
}

// Add inserts the unit unless its path or name is already present.
func (s *SourceSet) Add(unit *SourceUnit) bool {
	if s.Contains(unit.Path) || s.Contains(unit.Name) {
		return false
	}
	s.units[unit.Path] = unit
	s.names[unit.Name] = unit
	s.order = append(s.order, unit)
	return true
}

// Lookup finds a unit by canonical path or by source-unit name.
func (s *SourceSet) Lookup(key string) (*SourceUnit, bool) {
	if u, ok := s.units[key]; ok {
		return u, true
	}
	u, ok := s.names[key]
	return u, ok
}

func (s *SourceSet) Contains(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

func (s *SourceSet) Entry() *SourceUnit {
	return s.entry
}

// Units returns all units in discovery order, the entry first.
func (s *SourceSet) Units() []*SourceUnit {
	return s.order
}

// Dependencies returns the non-entry units in discovery order.
func (s *SourceSet) Dependencies() []*SourceUnit {
	return s.order[1:]
}

func (s *SourceSet) Len() int {
	return len(s.order)
}
