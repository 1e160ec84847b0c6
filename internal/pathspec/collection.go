package pathspec

// Collection is an ordered sequence of pathspecs applied together. An
// empty Collection is the "no constraint" marker: it matches everything
// and is unaffected by subdirectory translation.
//
// Collections are immutable; every operation returns a new value.
// Equality is structural (see Equal), never wrapper identity.
type Collection struct {
	specs []PathSpec
}

// NewCollection builds a Collection from already-parsed pathspecs.
// Calling it with no arguments produces the "no constraint" collection.
func NewCollection(specs ...PathSpec) Collection {
	return Collection{specs: append([]PathSpec(nil), specs...)}
}

// ParseCollection builds a Collection by parsing raw pathspec strings.
// An empty argument list produces the "no constraint" collection.
func ParseCollection(raw ...string) (Collection, error) {
	specs := make([]PathSpec, 0, len(raw))
	for _, r := range raw {
		spec, err := Parse(r)
		if err != nil {
			return Collection{}, err
		}
		specs = append(specs, spec)
	}
	return Collection{specs: specs}, nil
}

// IsUnconstrained reports whether the collection is the "no constraint"
// marker (it contains no pathspecs).
func (c Collection) IsUnconstrained() bool {
	return len(c.specs) == 0
}

// Len returns the number of contained pathspecs.
func (c Collection) Len() int {
	return len(c.specs)
}

// Specs returns a copy of the contained pathspecs in order.
func (c Collection) Specs() []PathSpec {
	return append([]PathSpec(nil), c.specs...)
}

// ForSubdir translates every contained pathspec for the given
// subdirectory and flattens the results into a new collection. The
// "no constraint" collection maps to itself.
//
// A constrained collection can translate to an empty one when none of
// its pathspecs apply to the subdir. Callers that need to distinguish
// that case from "no constraint" should consult AnyMatchSubdir before
// translating.
func (c Collection) ForSubdir(subdir string) Collection {
	if c.IsUnconstrained() {
		return c
	}
	var translated []PathSpec
	for _, spec := range c.specs {
		translated = append(translated, spec.ForSubdir(subdir)...)
	}
	return Collection{specs: translated}
}

// AnyMatchSubdir reports whether at least one contained pathspec applies
// to the given subdirectory. The "no constraint" collection matches any
// subdirectory.
func (c Collection) AnyMatchSubdir(subdir string) bool {
	if c.IsUnconstrained() {
		return true
	}
	for _, spec := range c.specs {
		if len(spec.ForSubdir(subdir)) > 0 {
			return true
		}
	}
	return false
}

// ArgList serializes the contained pathspecs in order, suitable for
// passing on a Git command line. The "no constraint" collection yields
// an empty list.
func (c Collection) ArgList() []string {
	args := make([]string, 0, len(c.specs))
	for _, spec := range c.specs {
		args = append(args, spec.String())
	}
	return args
}

// Equal reports whether two collections contain equal pathspec sequences.
func (c Collection) Equal(other Collection) bool {
	if len(c.specs) != len(other.specs) {
		return false
	}
	for i, spec := range c.specs {
		if !spec.Equal(other.specs[i]) {
			return false
		}
	}
	return true
}
