// Package glyph supplies the character sets rain drops are drawn from.
package glyph

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// Rand is the randomness a Source needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Source draws random glyphs from a fixed set.
type Source struct {
	set []rune
	rng Rand
}

// New creates a Source over the given set.
// Duplicates are dropped. Unprintable runes and runes that do not occupy
// exactly one terminal cell are rejected, as is a set that ends up empty.
func New(set []rune, rng Rand) (*Source, error) {
	clean, err := Normalize(set)
	if err != nil {
		return nil, err
	}
	return &Source{set: clean, rng: rng}, nil
}

// Next returns a random glyph from the set.
func (s *Source) Next() rune {
	return s.set[s.rng.Intn(len(s.set))]
}

// Len returns the number of distinct glyphs in the set.
func (s *Source) Len() int {
	return len(s.set)
}

// Contains reports whether r belongs to the set.
func (s *Source) Contains(r rune) bool {
	for _, g := range s.set {
		if g == r {
			return true
		}
	}
	return false
}

// Normalize validates a glyph set and removes duplicates, keeping first-seen order.
func Normalize(set []rune) ([]rune, error) {
	seen := make(map[rune]bool, len(set))
	clean := make([]rune, 0, len(set))
	for _, r := range set {
		if seen[r] {
			continue
		}
		seen[r] = true
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			continue
		}
		if IsWide(r) {
			return nil, &core.ConfigError{
				Field:  "glyphs",
				Reason: fmt.Sprintf("%q occupies two terminal cells", r),
			}
		}
		if IsZeroWidth(r) {
			return nil, &core.ConfigError{
				Field:  "glyphs",
				Reason: fmt.Sprintf("%U does not advance the cursor", r),
			}
		}
		clean = append(clean, r)
	}
	if len(clean) == 0 {
		return nil, &core.ConfigError{Field: "glyphs", Reason: "character set cannot be empty"}
	}
	return clean, nil
}

// IsWide reports whether r is rendered two cells wide.
func IsWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// IsZeroWidth reports whether r takes no cell of its own, such as a
// combining mark that merges into the previous character.
func IsZeroWidth(r rune) bool {
	return runewidth.RuneWidth(r) == 0 || unicode.In(r, unicode.Mn, unicode.Me)
}

// ---- Built-in sets

// Names of the built-in character sets.
const (
	SetAlphanumeric = "alphanumeric"
	SetPrintable    = "printable"
	SetSymbols      = "symbols"
	SetKatakana     = "katakana"
	SetBinary       = "binary"
	SetHex          = "hex"
	SetGreek        = "greek"
	SetBraille      = "braille"

	DefaultSet = SetPrintable
)

var builtin = map[string][]rune{
	SetAlphanumeric: alphanumeric(),
	SetPrintable:    runeRange(0x21, 0x7e),
	SetSymbols:      []rune("0123456789!@#$%^&*()_+-=[]{}|;:'\",./<>?~`\\"),
	SetKatakana:     runeRange(0xff66, 0xff9d),
	SetBinary:       []rune("01"),
	SetHex:          []rune("0123456789ABCDEF"),
	SetGreek:        []rune("αβγδεζηθικλμνξοπρστυφχψωΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ"),
	SetBraille:      runeRange(0x2801, 0x28ff),
}

// Builtin returns a copy of the named set.
func Builtin(name string) ([]rune, bool) {
	set, ok := builtin[name]
	if !ok {
		return nil, false
	}
	out := make([]rune, len(set))
	copy(out, set)
	return out, true
}

// Names returns the built-in set names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func alphanumeric() []rune {
	set := runeRange('0', '9')
	set = append(set, runeRange('A', 'Z')...)
	return append(set, runeRange('a', 'z')...)
}

// runeRange returns every rune in [lo, hi].
func runeRange(lo, hi rune) []rune {
	set := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		set = append(set, r)
	}
	return set
}
