package rules

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownRule is returned by Parse for names that match no rule.
var ErrUnknownRule = errors.New("unknown rule")

// customPrefix introduces a custom descriptor in textual rule names.
const customPrefix = "custom:"

var kindInfo = [...]struct {
	id      string
	display string
	aliases []string
}{
	GameOfLife:         {"life", "Game of Life", []string{"gameoflife", "conway", "b3s23"}},
	HighLife:           {"highlife", "HighLife", []string{"b36s23"}},
	BriansBrain:        {"briansbrain", "Brian's Brain", []string{"brain"}},
	Seeded:             {"seeded", "Seeded", []string{"seeds"}},
	DayNight:           {"daynight", "Day & Night", []string{"dayandnight"}},
	MorleysGarden:      {"morleysgarden", "Morley's Garden", []string{"morley", "move"}},
	Diffusion:          {"diffusion", "Diffusion", nil},
	SierpinskiTriangle: {"sierpinski", "Sierpinski Triangle", []string{"sierpinskitriangle"}},
	Custom:             {"custom", "Custom", nil},
}

var byName = buildNameIndex()

func buildNameIndex() map[string]Kind {
	idx := map[string]Kind{}
	for k := range kindInfo {
		if Kind(k) == Custom {
			continue
		}
		info := kindInfo[k]
		idx[normalize(info.id)] = Kind(k)
		idx[normalize(info.display)] = Kind(k)
		for _, a := range info.aliases {
			idx[normalize(a)] = Kind(k)
		}
	}
	return idx
}

// normalize reduces a rule name to lowercase letters and digits with accents
// stripped, so "Brian’s Brain", "brians-brain" and "BRIANSBRAIN" collide.
func normalize(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range cases.Fold().String(decomposed) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String returns the short identifier of the kind.
func (k Kind) String() string {
	if int(k) < len(kindInfo) {
		return kindInfo[k].id
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// String returns the identifier accepted by Parse.
func (r Rule) String() string {
	if r.Kind == Custom {
		return customPrefix + r.Descriptor
	}
	return r.Kind.String()
}

// Name returns a human-readable name for menus and HUDs.
func (r Rule) Name() string {
	if r.Kind == Custom {
		return fmt.Sprintf("Custom (%s)", r.Descriptor)
	}
	if int(r.Kind) < len(kindInfo) {
		return kindInfo[r.Kind].display
	}
	return r.Kind.String()
}

// Parse resolves a rule name. Names are matched ignoring case, accents,
// spaces and punctuation. "custom:<descriptor>" selects a custom rule; the
// descriptor is kept verbatim and resolved when the rule is stepped.
func Parse(name string) (Rule, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) >= len(customPrefix) && strings.EqualFold(trimmed[:len(customPrefix)], customPrefix) {
		desc := strings.TrimSpace(trimmed[len(customPrefix):])
		if desc == "" {
			return Rule{}, fmt.Errorf("%w: empty custom descriptor", ErrUnknownRule)
		}
		return NewCustom(desc), nil
	}
	if k, ok := byName[normalize(trimmed)]; ok {
		return Of(k), nil
	}
	return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}
