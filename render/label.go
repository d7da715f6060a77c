package render

import (
	"strings"
	"unicode/utf8"
)

// Entity count thresholds of the label policy
const (
	DenseCount   = 12
	CrowdedCount = 15

	compactMax = 16
)

// CompactName abbreviates long names: token initials, then an acronym, then truncation
func CompactName(name string) string {
	if utf8.RuneCountInString(name) <= compactMax {
		return name
	}

	tokens := strings.Fields(name)
	if len(tokens) > 1 {
		parts := make([]string, len(tokens))
		acronym := make([]rune, 0, len(tokens))
		for i, tok := range tokens {
			first, _ := utf8.DecodeRuneInString(tok)
			acronym = append(acronym, first)
			if i < len(tokens)-1 {
				parts[i] = string(first) + "."
			} else {
				parts[i] = tok
			}
		}
		if initialed := strings.Join(parts, " "); utf8.RuneCountInString(initialed) <= compactMax+2 {
			return initialed
		}
		if n := len(acronym); n >= 2 && n <= 6 {
			return string(acronym)
		}
	}

	return string([]rune(name)[:compactMax-1]) + "..."
}

// NoActive marks the absence of an active entity
const NoActive = -1

// LabelPolicy decides label content from the entity count
type LabelPolicy struct {
	Dense   bool
	Crowded bool
}

// NewLabelPolicy derives the thresholds for count entities
func NewLabelPolicy(count int) LabelPolicy {
	return LabelPolicy{Dense: count >= DenseCount, Crowded: count >= CrowdedCount}
}

// Label is the resolved label of one entity
type Label struct {
	Text      string
	ShowReach bool
	Active    bool
	Dimmed    bool
}

// Decide resolves the label of entity index given the active index (NoActive if none)
func (p LabelPolicy) Decide(name string, index, active int) Label {
	isActive := active == index
	l := Label{
		Text:      name,
		ShowReach: isActive || !p.Dense,
		Active:    isActive,
		Dimmed:    active != NoActive && !isActive,
	}
	if p.Crowded && !isActive {
		l.Text = CompactName(name)
	}
	return l
}
