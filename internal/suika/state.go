package suika

import (
	"time"

	"github.com/vovakirdan/tui-suika/internal/physics"
)

// ItemID identifies an item for the lifetime of a State. IDs are never reused.
type ItemID uint64

// ItemMeta is the rule-side record of a live item. The physics body only
// carries geometry; everything the rules need lives here.
type ItemMeta struct {
	ID     ItemID
	Tier   int
	Body   physics.BodyID
	BornAt time.Duration

	// Removed is set exactly once, when the item is consumed by a merge or
	// destroyed. A removed item is never merged or scanned again.
	Removed bool

	// DangerSince is when the item started resting above the danger line,
	// or nil when it is not in danger.
	DangerSince *time.Duration
}

// Age returns how long the item has existed at now.
func (m *ItemMeta) Age(now time.Duration) time.Duration {
	return now - m.BornAt
}

// InDanger reports whether the danger timer is running.
func (m *ItemMeta) InDanger() bool {
	return m.DangerSince != nil
}

// State is the mutable game state: score, spawn sequencing, the game-over
// flag and the item side table. It is owned by a Match; readers use the
// accessors.
type State struct {
	tiers  Tiers
	ledger Ledger

	armed    int
	next     int
	dropping bool
	gameOver bool

	items  map[ItemID]*ItemMeta
	byBody map[physics.BodyID]ItemID
	order  []ItemID // Live items in creation order
	nextID ItemID
}

// NewState creates an empty state over a tier table.
func NewState(tiers Tiers) *State {
	s := &State{tiers: tiers}
	s.Reset()
	return s
}

// Reset empties the state. Item IDs keep counting up.
func (s *State) Reset() {
	s.ledger.Reset()
	s.armed = 0
	s.next = 0
	s.dropping = false
	s.gameOver = false
	s.items = make(map[ItemID]*ItemMeta)
	s.byBody = make(map[physics.BodyID]ItemID)
	s.order = nil
}

func (s *State) Tiers() Tiers     { return s.tiers }
func (s *State) Score() int       { return s.ledger.Score() }
func (s *State) Ledger() *Ledger  { return &s.ledger }
func (s *State) Armed() int       { return s.armed }
func (s *State) Next() int        { return s.next }
func (s *State) Dropping() bool   { return s.dropping }
func (s *State) GameOver() bool   { return s.gameOver }
func (s *State) ItemCount() int   { return len(s.order) }
func (s *State) setGameOver()     { s.gameOver = true }
func (s *State) setNext(tier int) { s.next = tier }

// Items returns the live items in creation order.
func (s *State) Items() []*ItemMeta {
	out := make([]*ItemMeta, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Item looks up an item that has not been swept yet.
func (s *State) Item(id ItemID) (*ItemMeta, bool) {
	m, ok := s.items[id]
	return m, ok
}

// ItemByBody maps a physics body back to its item.
// Walls and other non-item bodies are not found.
func (s *State) ItemByBody(body physics.BodyID) (*ItemMeta, bool) {
	id, ok := s.byBody[body]
	if !ok {
		return nil, false
	}
	return s.Item(id)
}

// track records a new live item.
func (s *State) track(tier int, body physics.BodyID, now time.Duration) *ItemMeta {
	s.nextID++
	m := &ItemMeta{ID: s.nextID, Tier: tier, Body: body, BornAt: now}
	s.items[m.ID] = m
	s.byBody[body] = m.ID
	s.order = append(s.order, m.ID)
	return m
}

// retire flags an item removed and drops it from the live set. Its record
// stays in the side table until sweep so that stale contact pairs in the
// same batch still resolve to a removed item.
func (s *State) retire(id ItemID) {
	m, ok := s.items[id]
	if !ok {
		return
	}
	m.Removed = true
	m.DangerSince = nil
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// sweep forgets removed items.
func (s *State) sweep() {
	for id, m := range s.items {
		if m.Removed {
			delete(s.byBody, m.Body)
			delete(s.items, id)
		}
	}
}
