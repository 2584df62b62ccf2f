package support

import "strings"

// Category is a support topic used to pick a canned reply.
type Category string

const (
	Anxiety     Category = "anxiety"
	Sleep       Category = "sleep"
	Overwhelmed Category = "overwhelmed"
	Lonely      Category = "lonely"
	Motivation  Category = "motivation"
	WorkStress  Category = "work_stress"
	Greeting    Category = "greeting"
	Default     Category = "default"
)

// Rule binds a category to the substrings that trigger it.
type Rule struct {
	Category Category
	Keywords []string
}

// Rules is evaluated top to bottom and the first rule with a matching keyword wins.
// Overlaps between categories ("anxious and can't sleep") are settled by this order alone.
//
// Matching is raw substring containment on lowercased text, so short keywords also fire
// inside longer words ("hi" in "this", "rest" in "interested"). Keep it that way: replies
// users already get depend on it.
var Rules = []Rule{
	{Category: Anxiety, Keywords: []string{"anxious", "anxiety", "worried", "panic"}},
	{Category: Sleep, Keywords: []string{"sleep", "insomnia", "tired", "rest"}},
	{Category: Overwhelmed, Keywords: []string{"overwhelmed", "too much", "stressed"}},
	{Category: Lonely, Keywords: []string{"lonely", "alone", "isolated"}},
	{Category: Motivation, Keywords: []string{"motivation", "unmotivated", "give up"}},
	{Category: WorkStress, Keywords: []string{"work", "job", "boss", "deadline"}},
	{Category: Greeting, Keywords: []string{"hello", "hi", "hey"}},
}

var labels = map[Category]string{
	Anxiety:     "Anxiety",
	Sleep:       "Sleep trouble",
	Overwhelmed: "Feeling overwhelmed",
	Lonely:      "Loneliness",
	Motivation:  "Motivation",
	WorkStress:  "Work stress",
	Greeting:    "Greeting",
	Default:     "General support",
}

// Categories returns every category in priority order, Default last.
func Categories() []Category {
	out := make([]Category, 0, len(Rules)+1)
	for _, rule := range Rules {
		out = append(out, rule.Category)
	}
	return append(out, Default)
}

// ParseCategory resolves a category tag, ignoring case and surrounding space.
func ParseCategory(raw string) (Category, bool) {
	normalized := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := labels[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// Describe returns a display label for the category.
func Describe(c Category) string {
	if label, ok := labels[c]; ok {
		return label
	}
	return labels[Default]
}

// Classify maps free text to a category using Rules.
func Classify(text string) Category {
	return ClassifyWith(Rules, text)
}

// ClassifyWith maps free text to the first category in rules whose keyword occurs in it.
// It never fails: text matching nothing, including empty text, yields Default.
func ClassifyWith(rules []Rule, text string) Category {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return Default
	}

	for _, rule := range rules {
		for _, word := range rule.Keywords {
			if word == "" {
				continue
			}
			if strings.Contains(normalized, strings.ToLower(word)) {
				return rule.Category
			}
		}
	}
	return Default
}
