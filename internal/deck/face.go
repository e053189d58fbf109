package deck

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Face is one value slot on a card. It is either a Single string or a
// Multi list of interchangeable alternatives.
type Face interface {
	// Join renders the face, joining alternatives in their stored order.
	Join() string

	// JoinRandom renders the face with alternatives in shuffled order.
	JoinRandom(rng *rand.Rand) string

	// Values returns every alternative.
	Values() []string

	// Equal reports structural equality.
	Equal(other Face) bool

	// Empty reports whether the face has nothing to show.
	Empty() bool

	sealed()
}

// Single is a face with exactly one value.
type Single string

// Multi is a face with several alternative values, such as synonyms.
type Multi []string

func (s Single) Join() string                 { return string(s) }
func (s Single) JoinRandom(*rand.Rand) string { return string(s) }
func (s Single) Values() []string             { return []string{string(s)} }
func (s Single) Empty() bool                  { return strings.TrimSpace(string(s)) == "" }
func (Single) sealed()                        {}

func (s Single) Equal(other Face) bool {
	o, ok := other.(Single)
	return ok && o == s
}

func (m Multi) Join() string {
	return strings.Join(m, m.separator())
}

func (m Multi) JoinRandom(rng *rand.Rand) string {
	shuffled := slices.Clone(m)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return strings.Join(shuffled, m.separator())
}

func (m Multi) Values() []string { return slices.Clone(m) }

func (m Multi) Empty() bool {
	if len(m) == 0 {
		return true
	}
	for _, v := range m {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func (Multi) sealed() {}

func (m Multi) Equal(other Face) bool {
	o, ok := other.(Multi)
	return ok && slices.Equal(m, o)
}

// separator switches to semicolons when an alternative already contains a
// comma, so the joined string stays unambiguous.
func (m Multi) separator() string {
	for _, v := range m {
		if strings.Contains(v, ",") {
			return "; "
		}
	}
	return ", "
}

// FacesEqual compares two possibly absent faces.
func FacesEqual(a, b Face) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Overlaps reports whether a and b can be displayed as the same text in
// some order of their alternatives. Faces that are Equal always overlap.
func Overlaps(a, b Face) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	am, aMulti := a.(Multi)
	bm, bMulti := b.(Multi)
	switch {
	case aMulti && bMulti:
		return sameValues(am, bm)
	case aMulti:
		return sameValues(am, strings.Split(b.Join(), am.separator()))
	case bMulti:
		return sameValues(bm, strings.Split(a.Join(), bm.separator()))
	default:
		return a.Join() == b.Join()
	}
}

func sameValues(a, b []string) bool {
	return slices.Equal(slices.Sorted(slices.Values(a)), slices.Sorted(slices.Values(b)))
}

// faceFromValue converts a decoded JSON or YAML value into a Face. A nil
// value is an absent face.
func faceFromValue(v any) (Face, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Single(v), nil
	case []any:
		vals := make(Multi, 0, len(v))
		for _, item := range v {
			switch item := item.(type) {
			case string:
				vals = append(vals, item)
			case nil, []any, map[string]any:
				return nil, fmt.Errorf("face alternatives must be scalars, got %T", item)
			default:
				vals = append(vals, fmt.Sprint(item))
			}
		}
		return vals, nil
	case map[string]any:
		return nil, fmt.Errorf("face must be a string or list, got an object")
	default:
		// YAML scalars such as numbers and booleans.
		return Single(fmt.Sprint(v)), nil
	}
}
