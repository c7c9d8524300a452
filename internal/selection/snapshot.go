package selection

import "time"

type Snapshot struct {
	Items    []Item            `json:"items"`
	Selected []string          `json:"selected"`
	Details  map[string]Detail `json:"details"`
}

func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		Items:    append([]Item(nil), m.items...),
		Selected: m.Selected(),
		Details:  make(map[string]Detail, len(m.details)),
	}
	for id, d := range m.details {
		s.Details[id] = *d
	}
	return s
}

// Restore rebuilds a manager, including detail records for ids that are not selected.
func Restore(s Snapshot) *Manager {
	m := NewManager(s.Items)
	for _, id := range s.Selected {
		m.selected[id] = true
	}
	for id, d := range s.Details {
		d := d
		m.details[id] = &d
	}
	return m
}

// Session is a server-held selection for one admin screen. It lives until reset, discard or TTL.
type Session struct {
	ID         string    `json:"id"`
	MerchantID string    `json:"merchant_id"`
	State      Snapshot  `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
