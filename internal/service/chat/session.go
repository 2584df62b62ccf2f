package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/internal/model/chat"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/pkg/clock"
)

// DefaultTypingDelay is how long the bot "types" before its reply lands.
const DefaultTypingDelay = 1500 * time.Millisecond

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	ID           string
	Engine       *support.Engine
	Clock        clock.Clock
	TypingDelay  time.Duration
	Greeting     string
	QuickReplies []string
	NewID        func() string
	Logger       *zap.Logger
}

// Session is one conversation: an append-only message log plus a two-state turn machine.
//
// Idle --Submit--> Composing --Resolve--> Idle. While composing every Submit is dropped,
// so at most one reply is outstanding and a user message always precedes its reply.
type Session struct {
	id           string
	engine       *support.Engine
	clock        clock.Clock
	delay        time.Duration
	quickReplies []string
	newID        func() string
	logger       *zap.Logger

	mu       sync.Mutex
	messages []chat.Message
	pending  *chat.PendingTurn
	timer    clock.Timer
	closed   bool
	subs     map[int]chan chat.Snapshot
	nextSub  int

	lastActive time.Time
}

// NewSession creates an idle session seeded with the greeting.
func NewSession(opts Options) *Session {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Engine == nil {
		opts.Engine = support.NewDefaultEngine(nil)
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.TypingDelay < 0 {
		opts.TypingDelay = 0
	}
	if opts.Greeting == "" {
		opts.Greeting = content.Greeting
	}
	if opts.QuickReplies == nil {
		opts.QuickReplies = content.Seed().QuickReplies
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		id:           opts.ID,
		engine:       opts.Engine,
		clock:        opts.Clock,
		delay:        opts.TypingDelay,
		quickReplies: append([]string(nil), opts.QuickReplies...),
		newID:        opts.NewID,
		logger:       opts.Logger.With(zap.String("session", opts.ID)),
		messages:     make([]chat.Message, 0, 16),
		subs:         make(map[int]chan chat.Snapshot),
	}
	s.lastActive = s.clock.Now()
	s.messages = append(s.messages, chat.Message{
		ID:        s.newID(),
		Text:      opts.Greeting,
		Sender:    chat.SenderBot,
		Timestamp: s.clock.Now(),
	})
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Submit appends a user message and starts composing the reply.
// Blank text, a reply already in flight or a closed session make it a silent no-op.
func (s *Session) Submit(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if s.pending != nil {
		s.logger.Debug("submission dropped while composing")
		return false
	}

	now := s.clock.Now()
	msg := chat.Message{
		ID:        s.newID(),
		Text:      text,
		Sender:    chat.SenderUser,
		Timestamp: now,
	}
	s.messages = append(s.messages, msg)
	s.lastActive = now
	turn := &chat.PendingTurn{
		MessageID: msg.ID,
		Text:      text,
		DueAt:     now.Add(s.delay),
	}
	s.pending = turn
	s.timer = s.clock.AfterFunc(s.delay, func() { s.resolveTurn(turn) })
	s.publishLocked()
	return true
}

// SubmitQuickReply submits the quick reply at index exactly as if it were typed.
func (s *Session) SubmitQuickReply(index int) bool {
	if index < 0 || index >= len(s.quickReplies) {
		return false
	}
	return s.Submit(s.quickReplies[index])
}

// QuickReplies returns the shortcut texts offered with this session.
func (s *Session) QuickReplies() []string {
	return append([]string(nil), s.quickReplies...)
}

// Resolve ends the composing phase by appending the bot reply for the pending turn.
// Called by hand it ends the turn early and cancels the typing timer. While idle it does nothing.
func (s *Session) Resolve() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked()
}

// resolveTurn is the timer callback. A timer left over from an earlier turn is ignored.
func (s *Session) resolveTurn(turn *chat.PendingTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != turn {
		return
	}
	s.resolveLocked()
}

func (s *Session) resolveLocked() bool {
	if s.closed || s.pending == nil {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	category, reply := s.engine.Respond(s.pending.Text)
	s.messages = append(s.messages, chat.Message{
		ID:        s.newID(),
		Text:      reply,
		Sender:    chat.SenderBot,
		Timestamp: s.clock.Now(),
		Category:  category,
	})
	s.pending = nil
	s.lastActive = s.clock.Now()

	s.logger.Debug("reply composed", zap.String("category", string(category)))
	s.publishLocked()
	return true
}

// Composing reports whether a reply is being composed.
func (s *Session) Composing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Pending returns the turn awaiting its reply, if any.
func (s *Session) Pending() (chat.PendingTurn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return chat.PendingTurn{}, false
	}
	return *s.pending, true
}

// Messages returns a copy of the log in conversation order.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages...)
}

// Snapshot returns the current read-only view.
func (s *Session) Snapshot() chat.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe streams a snapshot now and after every change. A slow reader only misses
// intermediate snapshots, never the newest one. The channel closes on cancel or Close.
func (s *Session) Subscribe(buffer int) (<-chan chat.Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan chat.Snapshot, buffer)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[key]; ok {
			delete(s.subs, key)
			close(sub)
		}
	}
	return ch, cancel
}

// Close discards the session: the typing timer is stopped, subscribers are released
// and every later call is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	for key, sub := range s.subs {
		delete(s.subs, key)
		close(sub)
	}
}

// LastActive returns when the session was created, last changed or last looked up.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = s.clock.Now()
	s.mu.Unlock()
}

// idleSince reports whether the session has no reply in flight, no subscribers
// and no activity after cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending == nil && len(s.subs) == 0 && !s.lastActive.After(cutoff)
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) snapshotLocked() chat.Snapshot {
	snap := chat.Snapshot{
		SessionID: s.id,
		Messages:  append([]chat.Message(nil), s.messages...),
		Composing: s.pending != nil,
	}
	if s.pending != nil {
		pending := *s.pending
		snap.Pending = &pending
	}
	return snap
}

func (s *Session) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, sub := range s.subs {
		for {
			select {
			case sub <- snap:
			default:
				// full: drop the oldest queued snapshot and retry
				select {
				case <-sub:
				default:
				}
				continue
			}
			break
		}
	}
}
