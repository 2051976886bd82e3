package transform

// Owner names the service a store entry came from. Satisfied by any
// service handle with a Name method.
type Owner interface {
	Name() string
}

// Entry is one registration: a concrete target, the rule that rewrites it,
// and the service that contributed the rule.
type Entry struct {
	Target      Target
	Transformer Transformer
	Owner       Owner
}

// Store indexes transformer registrations by target type and label for the
// application phase. Registrations are append-only; a failed startup aborts
// the process rather than unwinding the store.
type Store struct {
	entries map[TargetType]map[string][]Entry
	classes map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		entries: make(map[TargetType]map[string][]Entry),
		classes: make(map[string]struct{}),
	}
}

func (s *Store) Add(target Target, xform Transformer, owner Owner) {
	byLabel, ok := s.entries[target.Type]
	if !ok {
		byLabel = make(map[string][]Entry)
		s.entries[target.Type] = byLabel
	}
	label := target.Label()
	byLabel[label] = append(byLabel[label], Entry{Target: target, Transformer: xform, Owner: owner})
	s.classes[target.ClassName] = struct{}{}
}

// TransformersFor returns the rules registered against exactly this target,
// in registration order.
func (s *Store) TransformersFor(target Target) []Transformer {
	byLabel, ok := s.entries[target.Type]
	if !ok {
		return nil
	}
	ents := byLabel[target.Label()]
	if len(ents) == 0 {
		return nil
	}
	out := make([]Transformer, len(ents))
	for i, e := range ents {
		out[i] = e.Transformer
	}
	return out
}

// NeedsTransforming reports whether any registration touches the class,
// at any target type.
func (s *Store) NeedsTransforming(className string) bool {
	_, ok := s.classes[className]
	return ok
}

// Len counts registrations across all types and labels.
func (s *Store) Len() int {
	n := 0
	for _, byLabel := range s.entries {
		for _, ents := range byLabel {
			n += len(ents)
		}
	}
	return n
}
