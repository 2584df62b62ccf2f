package support

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCandidates reports a category with nothing to reply with.
var ErrEmptyCandidates = errors.New("category has no reply candidates")

// ReplyTable maps each category to its candidate replies.
type ReplyTable map[Category][]string

// Validate checks that every category has at least one non-blank candidate.
func (t ReplyTable) Validate() error {
	for _, c := range Categories() {
		candidates := t[c]
		if len(candidates) == 0 {
			return fmt.Errorf("%s: %w", c, ErrEmptyCandidates)
		}
		for i, reply := range candidates {
			if strings.TrimSpace(reply) == "" {
				return fmt.Errorf("%s[%d] is blank: %w", c, i, ErrEmptyCandidates)
			}
		}
	}
	return nil
}

// Candidates returns a copy of the replies for c, or nil if c has none.
func (t ReplyTable) Candidates(c Category) []string {
	return append([]string(nil), t[c]...)
}

// Contains reports whether reply is one of the candidates for c.
func (t ReplyTable) Contains(c Category, reply string) bool {
	for _, candidate := range t[c] {
		if candidate == reply {
			return true
		}
	}
	return false
}

// DefaultReplies returns a fresh copy of the built-in reply table.
func DefaultReplies() ReplyTable {
	out := make(ReplyTable, len(defaultReplies))
	for c, replies := range defaultReplies {
		out[c] = append([]string(nil), replies...)
	}
	return out
}

var defaultReplies = ReplyTable{
	Greeting: {
		"I'm glad you're here. Remember, it's okay to not be okay sometimes. What's on your mind?",
		"Thank you for reaching out. That takes courage. How can I support you today?",
		"I'm here to listen without judgment. What would you like to talk about?",
	},
	Anxiety: {
		"Anxiety can feel overwhelming, but you're not alone. Try the 5-4-3-2-1 grounding technique: name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, and 1 you can taste.",
		"When anxiety strikes, remember to breathe slowly and deeply. Inhale for 4 counts, hold for 4, and exhale for 6. This activates your body's relaxation response.",
		"Anxiety often comes from worrying about the future. Try to focus on what you can control right now, in this moment.",
	},
	Sleep: {
		"Sleep troubles are common when we're stressed. Try creating a bedtime routine: dim lights 1 hour before bed, avoid screens, and consider gentle stretching or meditation.",
		"Good sleep hygiene can help: keep your bedroom cool and dark, avoid caffeine after 2 PM, and try to go to bed at the same time each night.",
		"If your mind is racing, try writing down your worries in a journal before bed. This helps get them out of your head and onto paper.",
	},
	Overwhelmed: {
		"Feeling overwhelmed is a sign you're carrying too much. Let's break things down into smaller, manageable pieces. What's the most pressing thing on your mind right now?",
		"When everything feels like a priority, nothing is. Try listing your tasks and identifying just 1-3 that truly need attention today.",
		"Remember: you don't have to do everything perfectly, and you don't have to do it all at once. Progress, not perfection.",
	},
	Lonely: {
		"Loneliness can be incredibly painful. You've taken a brave step by reaching out here. Consider calling a friend, joining a community group, or even just going somewhere where there are other people.",
		"Sometimes we feel lonely even when surrounded by others. This feeling is temporary, even though it doesn't feel that way right now. You matter, and you're valued.",
		"Connection doesn't always mean being around people - it can also mean connecting with yourself through journaling, art, or activities you enjoy.",
	},
	Motivation: {
		"Motivation often comes after we start, not before. Try committing to just 5 minutes of something meaningful to you. Often, starting is the hardest part.",
		"Remember why you started. What are your values? What kind of person do you want to be? Let those guide your next small step.",
		"It's okay to have days with low motivation. Be kind to yourself, and celebrate small wins. Even getting out of bed counts as an accomplishment.",
	},
	WorkStress: {
		"Work stress is incredibly common. Try setting boundaries: when work time ends, transition with a ritual like a short walk or changing clothes.",
		"Remember that your worth isn't defined by your productivity. You're valuable as a person, not just for what you do.",
		"If possible, talk to your supervisor about workload. Many workplace stress issues can be improved with better communication and realistic expectations.",
	},
	Default: {
		"I hear you, and what you're experiencing is valid. Sometimes just talking about things can help us see them more clearly.",
		"Thank you for sharing that with me. It sounds like you're going through a challenging time. Remember, seeking help is a sign of strength.",
		"Your feelings are important and deserve attention. Would you like to explore this further, or would you prefer some practical coping strategies?",
	},
}
