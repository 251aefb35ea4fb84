package crisis

import "strings"

// Level grades the severity of distress language in a message.
type Level string

const (
	Low       Level = "low"
	Medium    Level = "medium"
	High      Level = "high"
	Emergency Level = "emergency"
)

var severity = map[Level]int{Low: 0, Medium: 1, High: 2, Emergency: 3}

// Severity ranks the level; higher is more severe.
func (l Level) Severity() int { return severity[l] }

// Crisis reports whether the level warrants crisis resources.
func (l Level) Crisis() bool { return l == High || l == Emergency }

// Keywords holds the trigger phrases per level. Sets are checked in
// emergency, high, medium order; the first set containing a match decides,
// regardless of where each phrase appears in the text.
type Keywords struct {
	Emergency []string
	High      []string
	Medium    []string
}

// DefaultKeywords returns the built-in English trigger table.
func DefaultKeywords() Keywords {
	return Keywords{
		Emergency: []string{"suicide", "kill myself", "end it all", "want to die", "harm myself"},
		High:      []string{"hopeless", "worthless", "better off dead", "can't go on"},
		Medium:    []string{"depressed", "anxious", "overwhelmed", "stressed"},
	}
}

// Classifier maps message text to a risk level by case-insensitive
// substring match against the injected keyword table.
type Classifier struct {
	buckets []bucket
}

type bucket struct {
	level    Level
	keywords []string
}

// NewClassifier builds a classifier around the supplied keyword table.
func NewClassifier(kw Keywords) *Classifier {
	return &Classifier{buckets: []bucket{
		{level: Emergency, keywords: lowered(kw.Emergency)},
		{level: High, keywords: lowered(kw.High)},
		{level: Medium, keywords: lowered(kw.Medium)},
	}}
}

// Classify returns the risk level for the raw message text. It is
// deterministic and never fails; empty or whitespace-only input is Low.
func (c *Classifier) Classify(text string) Level {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Low
	}

	for _, b := range c.buckets {
		for _, word := range b.keywords {
			if word == "" {
				continue
			}
			if strings.Contains(normalized, word) {
				return b.level
			}
		}
	}

	return Low
}

func lowered(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}
