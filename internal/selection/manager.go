package selection

import "github.com/fekuna/omnipos-mall-service/internal/model"

const (
	FieldSellingPrice  = "sellingPrice"
	FieldGSTPercentage = "gstPercentage"
)

type Detail struct {
	SellingPrice  string `json:"sellingPrice"`
	GSTPercentage string `json:"gstPercentage"`
}

// Item is the slice of a catalog product the manager needs: identity, list position and sibling key.
type Item struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
}

func ItemsFromProducts(products []model.Product) []Item {
	items := make([]Item, len(products))
	for i := range products {
		items[i] = Item{ID: products[i].ID}
		if products[i].ParentID != nil {
			items[i].ParentID = *products[i].ParentID
		}
	}
	return items
}

// Manager tracks which catalog items are selected and their editable details. GST is shared by
// sibling variants: a newly selected item copies it from the first selected sibling, and writing it
// on one item writes every selected sibling.
type Manager struct {
	items    []Item
	groupOf  map[string]string
	siblings map[string][]string
	selected map[string]bool
	details  map[string]*Detail
}

func NewManager(items []Item) *Manager {
	m := &Manager{
		items:    items,
		groupOf:  make(map[string]string, len(items)),
		siblings: make(map[string][]string),
		selected: make(map[string]bool),
		details:  make(map[string]*Detail),
	}
	for _, it := range items {
		key := it.ParentID
		if key == "" {
			key = it.ID
		}
		m.groupOf[it.ID] = key
		m.siblings[key] = append(m.siblings[key], it.ID)
	}
	return m
}

// groupKey falls back to the id itself for items outside the product list.
func (m *Manager) groupKey(id string) string {
	if key, ok := m.groupOf[id]; ok {
		return key
	}
	return id
}

// Siblings lists the items sharing id's group in product-list order, id included.
func (m *Manager) Siblings(id string) []string {
	if sib, ok := m.siblings[m.groupKey(id)]; ok {
		return sib
	}
	return []string{id}
}

func (m *Manager) Select(id string, checked bool) {
	if !checked {
		delete(m.selected, id)
		delete(m.details, id)
		return
	}

	inherited := ""
	for _, sib := range m.Siblings(id) {
		if sib == id || !m.selected[sib] {
			continue
		}
		if d := m.details[sib]; d != nil && d.GSTPercentage != "" {
			inherited = d.GSTPercentage
			break
		}
	}

	m.selected[id] = true
	// details already recorded for id win over the defaults
	d := m.detail(id)
	if d.GSTPercentage == "" {
		d.GSTPercentage = inherited
	}
}

// UpdateDetail sets one editable field. Fields other than the selling price and GST percentage
// are ignored and leave no detail behind.
func (m *Manager) UpdateDetail(id, field, value string) {
	switch field {
	case FieldSellingPrice:
		m.detail(id).SellingPrice = value
	case FieldGSTPercentage:
		for _, sib := range m.Siblings(id) {
			if sib != id && !m.selected[sib] {
				continue
			}
			m.detail(sib).GSTPercentage = value
		}
	}
}

func (m *Manager) detail(id string) *Detail {
	d, ok := m.details[id]
	if !ok {
		d = &Detail{}
		m.details[id] = d
	}
	return d
}

func (m *Manager) Reset() {
	m.selected = make(map[string]bool)
	m.details = make(map[string]*Detail)
}

func (m *Manager) IsSelected(id string) bool {
	return m.selected[id]
}

// Detail returns a copy of id's detail record.
func (m *Manager) Detail(id string) (Detail, bool) {
	d, ok := m.details[id]
	if !ok {
		return Detail{}, false
	}
	return *d, true
}

// Selected lists selected ids in product-list order, then any ids unknown to the list.
func (m *Manager) Selected() []string {
	out := make([]string, 0, len(m.selected))
	listed := make(map[string]bool, len(m.items))
	for _, it := range m.items {
		listed[it.ID] = true
		if m.selected[it.ID] {
			out = append(out, it.ID)
		}
	}
	for id := range m.selected {
		if !listed[id] {
			out = append(out, id)
		}
	}
	return out
}
