package editor

import "sort"

// ChangeKind is a set of flags describing what changed.
type ChangeKind uint8

// Change flags.
const (
	ChangeText ChangeKind = 1 << iota
	ChangeSelection
	ChangeDocument
	ChangeLanguage
	ChangeLanguages
	ChangeCompile
)

// Has reports whether k includes flag.
func (k ChangeKind) Has(flag ChangeKind) bool {
	return k&flag != 0
}

// Subscribe registers fn to be called after every change. Listeners run
// synchronously in subscription order. The returned function removes the
// subscription.
func (s *State) Subscribe(fn func(ChangeKind)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *State) notify(kind ChangeKind) {
	if len(s.listeners) == 0 {
		return
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(kind)
		}
	}
}
