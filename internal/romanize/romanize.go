// Package romanize converts Hangul words to Latin transliterations.
package romanize

import (
	"fmt"
	"strings"

	"github.com/f3rmion/kword/internal/hangul"
)

// Scheme is a romanization system.
type Scheme string

const (
	RevisedRomanization Scheme = "rr"   // South Korean standard (annyeong)
	McCuneReischauer    Scheme = "mr"   // with breves and apostrophes (annyŏng)
	Yale                Scheme = "yale" // letter-by-letter linguistic system (annyeng)
)

// DefaultSchemes are used when nothing is configured.
var DefaultSchemes = []Scheme{RevisedRomanization, McCuneReischauer}

// AllSchemes lists every supported scheme.
var AllSchemes = []Scheme{RevisedRomanization, McCuneReischauer, Yale}

// Title returns the display name of the scheme.
func (s Scheme) Title() string {
	switch s {
	case RevisedRomanization:
		return "Revised"
	case McCuneReischauer:
		return "McCune-Reischauer"
	case Yale:
		return "Yale"
	}
	return string(s)
}

// ParseScheme parses a scheme name.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case RevisedRomanization:
		return RevisedRomanization, nil
	case McCuneReischauer:
		return McCuneReischauer, nil
	case Yale:
		return Yale, nil
	}
	return "", fmt.Errorf("unknown romanization scheme %q", s)
}

// ParseSchemes parses a list of scheme names, dropping duplicates.
func ParseSchemes(names []string) ([]Scheme, error) {
	var schemes []Scheme
	seen := make(map[Scheme]bool)
	for _, name := range names {
		s, err := ParseScheme(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			schemes = append(schemes, s)
		}
	}
	return schemes, nil
}

// Romanizer renders words in a fixed, ordered set of schemes.
type Romanizer struct {
	schemes []Scheme
}

// New creates a romanizer. With no schemes it uses DefaultSchemes.
func New(schemes ...Scheme) *Romanizer {
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}
	return &Romanizer{schemes: append([]Scheme(nil), schemes...)}
}

// Schemes returns the configured schemes in order.
func (r *Romanizer) Schemes() []Scheme {
	return append([]Scheme(nil), r.schemes...)
}

// Romanize returns one transliteration per configured scheme, in order.
func (r *Romanizer) Romanize(word string) []string {
	out := make([]string, len(r.schemes))
	for i, s := range r.schemes {
		out[i] = Transliterate(word, s)
	}
	return out
}

// Transliterate renders word in a single scheme. Runes outside the Hangul
// syllable block are copied through and break sound-change context.
func Transliterate(word string, scheme Scheme) string {
	switch scheme {
	case Yale:
		return yale(word)
	case McCuneReischauer:
		return phonetic(word, mrTables)
	default:
		return phonetic(word, rrTables)
	}
}

// Jamo indices used by the sound-change rules.
const (
	iniG  = 0
	iniN  = 2
	iniD  = 3
	iniR  = 5
	iniM  = 6
	iniB  = 7
	iniS  = 9
	iniNg = 11
	iniJ  = 12

	medI = 20

	finNone = 0
	finN    = 4
	finNg   = 21
)

type tables struct {
	initial      [19]string
	voiced       map[int]string // initial index -> voiced form, nil when the scheme does not voice
	medial       [21]string
	final        [28]string // coda value before a consonant or at word end
	liaison      [28]string // coda carried into a following ㅇ-initial syllable
	palatalShi   string     // ㅅ before ㅣ, empty when unchanged
	lateralOnset string     // onset written for ㄹ after a lateral or ㄴ coda
	nasalOnset   string     // onset written for ㄹ after a non-lateral coda
}

var rrTables = tables{
	initial: [19]string{"g", "kk", "n", "d", "tt", "r", "m", "b", "pp", "s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h"},
	medial: [21]string{"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o", "wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu", "eu", "ui", "i"},
	final: [28]string{"", "k", "k", "k", "n", "n", "n", "t", "l", "k", "m", "l", "l", "l", "p", "l", "m", "p", "p", "t", "t", "ng", "t", "t", "k", "t", "p", "t"},
	liaison: [28]string{"", "g", "kk", "ks", "n", "nj", "n", "d", "r", "lg", "lm", "lb", "ls", "lt", "lp", "r", "m", "b", "ps", "s", "ss", "ng", "j", "ch", "k", "t", "p", ""},
	lateralOnset: "l",
	nasalOnset:   "n",
}

var mrTables = tables{
	initial: [19]string{"k", "kk", "n", "t", "tt", "r", "m", "p", "pp", "s", "ss", "", "ch", "tch", "ch'", "k'", "t'", "p'", "h"},
	voiced:  map[int]string{iniG: "g", iniD: "d", iniB: "b", iniJ: "j"},
	medial: [21]string{"a", "ae", "ya", "yae", "ŏ", "e", "yŏ", "ye", "o", "wa", "wae", "oe", "yo", "u", "wŏ", "we", "wi", "yu", "ŭ", "ŭi", "i"},
	final: [28]string{"", "k", "k", "k", "n", "n", "n", "t", "l", "k", "m", "l", "l", "l", "p", "l", "m", "p", "p", "t", "t", "ng", "t", "t", "k", "t", "p", "t"},
	liaison: [28]string{"", "g", "kk", "ks", "n", "nj", "n", "d", "r", "lg", "lm", "lb", "ls", "lt'", "lp'", "r", "m", "b", "ps", "s", "ss", "ng", "j", "ch'", "k'", "t'", "p'", ""},
	palatalShi:   "sh",
	lateralOnset: "l",
	nasalOnset:   "n",
}

// phonetic renders a word in a pronunciation-based scheme: liaison into
// ㅇ-initial syllables, nasal assimilation before ㄴ/ㅁ/ㄹ and the lateral
// ㄹㄹ / ㄴㄹ / ㄹㄴ clusters.
func phonetic(word string, t tables) string {
	runes := []rune(word)
	var b strings.Builder

	onsetOverride := ""
	hasOverride := false
	prevVoiced := false // previous sound in the same word was a vowel or voiced coda

	for i, r := range runes {
		j, ok := hangul.Decompose(r)
		if !ok {
			b.WriteRune(r)
			hasOverride = false
			prevVoiced = false
			continue
		}

		// onset
		switch {
		case hasOverride:
			b.WriteString(onsetOverride)
		case t.voiced != nil && prevVoiced && t.voiced[j.Initial] != "":
			b.WriteString(t.voiced[j.Initial])
		case t.palatalShi != "" && j.Initial == iniS && j.Medial == medI:
			b.WriteString(t.palatalShi)
		default:
			b.WriteString(t.initial[j.Initial])
		}
		hasOverride = false

		b.WriteString(t.medial[j.Medial])

		// coda, looking at the next syllable
		next, nextOK := jamoAt(runes, i+1)
		coda := t.final[j.Final]

		if j.Final != finNone && nextOK {
			switch next.Initial {
			case iniNg:
				if j.Final != finNg {
					coda = ""
					onsetOverride, hasOverride = t.liaison[j.Final], true
				}
			case iniN, iniM:
				coda = nasalize(coda)
				if coda == "l" && next.Initial == iniN {
					onsetOverride, hasOverride = t.lateralOnset, true
				}
			case iniR:
				switch {
				case coda == "l" || j.Final == finN:
					coda = "l"
					onsetOverride, hasOverride = t.lateralOnset, true
				default:
					coda = nasalize(coda)
					onsetOverride, hasOverride = t.nasalOnset, true
				}
			}
		}
		b.WriteString(coda)

		prevVoiced = coda == "" || coda == "n" || coda == "l" || coda == "m" || coda == "ng"
	}

	return b.String()
}

// nasalize applies obstruent-to-nasal assimilation to a coda value.
func nasalize(coda string) string {
	switch coda {
	case "k":
		return "ng"
	case "t":
		return "n"
	case "p":
		return "m"
	}
	return coda
}

func jamoAt(runes []rune, i int) (hangul.Jamo, bool) {
	if i >= len(runes) {
		return hangul.Jamo{}, false
	}
	return hangul.Decompose(runes[i])
}

var (
	yaleInitial = [19]string{"k", "kk", "n", "t", "tt", "l", "m", "p", "pp", "s", "ss", "", "c", "cc", "ch", "kh", "th", "ph", "h"}
	yaleMedial  = [21]string{"a", "ay", "ya", "yay", "e", "ey", "ye", "yey", "o", "wa", "way", "oy", "yo", "wu", "we", "wey", "wi", "yu", "u", "uy", "i"}
	yaleFinal   = [28]string{"", "k", "kk", "ks", "n", "nc", "nh", "t", "l", "lk", "lm", "lp", "ls", "lth", "lph", "lh", "m", "p", "ps", "s", "ss", "ng", "c", "ch", "kh", "th", "ph", "h"}
)

// yale renders a word letter by letter; Yale encodes spelling, not sound.
func yale(word string) string {
	var b strings.Builder
	for _, r := range word {
		j, ok := hangul.Decompose(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteString(yaleInitial[j.Initial])
		b.WriteString(yaleMedial[j.Medial])
		b.WriteString(yaleFinal[j.Final])
	}
	return b.String()
}
