package support

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource draws an index in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewRandSource returns a source safe for concurrent use. Seed 0 seeds from the clock.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// Sequence replays fixed draws, cycling when exhausted. Each value is reduced modulo n.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence builds a Sequence over values. An empty Sequence always draws 0.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Selector picks one reply per category uniformly at random.
// Consecutive identical replies are possible and intended.
type Selector struct {
	table ReplyTable
	rand  RandSource
}

// NewSelector validates table and takes its own copy of it.
func NewSelector(table ReplyTable, rnd RandSource) (*Selector, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRandSource(0)
	}

	copied := make(ReplyTable, len(table))
	for c, replies := range table {
		copied[c] = append([]string(nil), replies...)
	}
	return &Selector{table: copied, rand: rnd}, nil
}

// Select returns one candidate for c. Unknown categories draw from Default.
func (s *Selector) Select(c Category) string {
	candidates := s.table[c]
	if len(candidates) == 0 {
		candidates = s.table[Default]
	}
	idx := s.rand.Intn(len(candidates))
	if idx < 0 || idx >= len(candidates) {
		idx = 0
	}
	return candidates[idx]
}

// Table returns a copy of the replies the selector draws from.
func (s *Selector) Table() ReplyTable {
	out := make(ReplyTable, len(s.table))
	for c, replies := range s.table {
		out[c] = append([]string(nil), replies...)
	}
	return out
}

// Engine classifies text and picks the reply for it.
type Engine struct {
	rules    []Rule
	selector *Selector
}

// NewEngine pairs a rule list with a selector. Nil rules means Rules.
func NewEngine(rules []Rule, selector *Selector) *Engine {
	if rules == nil {
		rules = Rules
	}
	return &Engine{rules: rules, selector: selector}
}

// NewDefaultEngine uses Rules and DefaultReplies with the given randomness.
func NewDefaultEngine(rnd RandSource) *Engine {
	selector, err := NewSelector(DefaultReplies(), rnd)
	if err != nil {
		// the built-in table is validated by tests
		panic(err)
	}
	return NewEngine(Rules, selector)
}

// Classify applies the engine's rules to text.
func (e *Engine) Classify(text string) Category {
	return ClassifyWith(e.rules, text)
}

// Respond classifies text and selects a reply for the resulting category.
func (e *Engine) Respond(text string) (Category, string) {
	category := e.Classify(text)
	return category, e.selector.Select(category)
}

// Replies returns a copy of the engine's reply table.
func (e *Engine) Replies() ReplyTable {
	return e.selector.Table()
}
