// Package event provides synchronous observer lists keyed by event name.
//
// Subscribing returns a Subscription token; dropping the subscription is an
// explicit Unsubscribe call, and Connections groups tokens so an owner can
// release everything it subscribed in one call.
package event

// Name identifies an event kind
type Name string

// Args is implemented by every event argument type via an embedded Base.
type Args interface {
	base() *Base
}

// Base carries the handled counter shared by all event arguments.
type Base struct {
	// Handled counts the handlers that reported handling the event.
	Handled int
}

func (b *Base) base() *Base { return b }

// Handler reacts to an event. Returning true marks the event as handled.
type Handler func(args Args) bool

type slot struct {
	id      uint64
	fn      Handler
	removed bool
}

// Set holds the observer lists for one event source.
// The zero value is ready to use.
type Set struct {
	lists  map[Name][]*slot
	nextID uint64
	muted  bool
}

// Subscribe appends fn to the observer list for name.
func (s *Set) Subscribe(name Name, fn Handler) Subscription {
	if s.lists == nil {
		s.lists = make(map[Name][]*slot)
	}
	s.nextID++
	sl := &slot{id: s.nextID, fn: fn}
	s.lists[name] = append(s.lists[name], sl)
	return Subscription{set: s, name: name, slot: sl}
}

// Fire invokes the handlers for name in subscription order. Handlers added
// while firing run from the next Fire on; handlers removed while firing are
// skipped. It returns the number of handlers that reported handling.
func (s *Set) Fire(name Name, args Args) int {
	if s == nil || s.muted {
		return 0
	}
	list := s.lists[name]
	if len(list) == 0 {
		return 0
	}
	snapshot := make([]*slot, len(list))
	copy(snapshot, list)

	handled := 0
	for _, sl := range snapshot {
		if sl.removed {
			continue
		}
		if sl.fn(args) {
			handled++
			if args != nil {
				args.base().Handled++
			}
		}
	}
	return handled
}

// SetMuted suppresses (or re-enables) all firing on the set.
func (s *Set) SetMuted(muted bool) { s.muted = muted }

// Muted reports whether the set is muted.
func (s *Set) Muted() bool { return s.muted }

// Count returns the number of live subscriptions for name.
func (s *Set) Count(name Name) int { return len(s.lists[name]) }

// Clear drops every subscription on the set.
func (s *Set) Clear() {
	for _, list := range s.lists {
		for _, sl := range list {
			sl.removed = true
		}
	}
	s.lists = nil
}

func (s *Set) remove(name Name, target *slot) {
	list := s.lists[name]
	for i, sl := range list {
		if sl == target {
			sl.removed = true
			s.lists[name] = append(list[:i:i], list[i+1:]...)
			if len(s.lists[name]) == 0 {
				delete(s.lists, name)
			}
			return
		}
	}
}

// Subscription is the token returned by Subscribe.
type Subscription struct {
	set  *Set
	name Name
	slot *slot
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.set == nil || s.slot == nil || s.slot.removed {
		return
	}
	s.set.remove(s.name, s.slot)
}

// Connected reports whether the handler is still subscribed.
func (s Subscription) Connected() bool {
	return s.slot != nil && !s.slot.removed
}

// Connections collects subscriptions owned by one party.
type Connections struct {
	subs []Subscription
}

// Add records sub.
func (c *Connections) Add(sub Subscription) { c.subs = append(c.subs, sub) }

// Len returns the number of recorded subscriptions that are still connected.
func (c *Connections) Len() int {
	n := 0
	for _, s := range c.subs {
		if s.Connected() {
			n++
		}
	}
	return n
}

// DisconnectAll unsubscribes everything recorded.
func (c *Connections) DisconnectAll() {
	for _, s := range c.subs {
		s.Unsubscribe()
	}
	c.subs = nil
}
