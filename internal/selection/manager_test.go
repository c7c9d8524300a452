package selection

import "testing"

// A, B and C are variants of base product P; D stands alone.
func catalog() []Item {
	return []Item{
		{ID: "P"},
		{ID: "A", ParentID: "P"},
		{ID: "B", ParentID: "P"},
		{ID: "C", ParentID: "P"},
		{ID: "D"},
	}
}

func gst(t *testing.T, m *Manager, id string) string {
	t.Helper()
	d, ok := m.Detail(id)
	if !ok {
		t.Fatalf("no detail for %s", id)
	}
	return d.GSTPercentage
}

func TestSelectInheritsSiblingGST(t *testing.T) {
	m := NewManager(catalog())

	m.Select("A", true)
	m.UpdateDetail("A", FieldGSTPercentage, "5")
	m.Select("B", true)

	if got := gst(t, m, "B"); got != "5" {
		t.Fatalf("B gst: got=%q want=%q", got, "5")
	}
	if d, _ := m.Detail("B"); d.SellingPrice != "" {
		t.Fatalf("B selling price should start empty, got %q", d.SellingPrice)
	}
}

func TestSelectWithoutSelectedSiblingStartsEmpty(t *testing.T) {
	m := NewManager(catalog())

	m.Select("D", true)
	m.UpdateDetail("D", FieldGSTPercentage, "18")
	m.Select("A", true)

	if got := gst(t, m, "A"); got != "" {
		t.Fatalf("A gst: got=%q want empty", got)
	}
}

func TestUpdateGSTPropagatesToSelectedSiblingsOnly(t *testing.T) {
	m := NewManager(catalog())

	m.Select("A", true)
	m.Select("B", true)
	m.UpdateDetail("A", FieldGSTPercentage, "12")

	if gst(t, m, "A") != "12" || gst(t, m, "B") != "12" {
		t.Fatalf("A=%q B=%q, want both 12", gst(t, m, "A"), gst(t, m, "B"))
	}
	if _, ok := m.Detail("C"); ok {
		t.Fatal("unselected sibling C must be untouched")
	}

	// C picks the value up only when selected
	m.Select("C", true)
	if got := gst(t, m, "C"); got != "12" {
		t.Fatalf("C gst after select: got=%q", got)
	}
}

func TestUpdateGSTFromRootReachesVariants(t *testing.T) {
	m := NewManager(catalog())

	m.Select("P", true)
	m.Select("A", true)
	m.UpdateDetail("P", FieldGSTPercentage, "28")

	if gst(t, m, "A") != "28" {
		t.Fatalf("A gst: got=%q", gst(t, m, "A"))
	}
}

func TestOtherFieldsStayLocal(t *testing.T) {
	m := NewManager(catalog())

	m.Select("A", true)
	m.Select("B", true)
	m.UpdateDetail("A", FieldSellingPrice, "199")

	if d, _ := m.Detail("A"); d.SellingPrice != "199" {
		t.Fatalf("A selling price: got=%q", d.SellingPrice)
	}
	if d, _ := m.Detail("B"); d.SellingPrice != "" {
		t.Fatalf("B selling price should be untouched, got=%q", d.SellingPrice)
	}
}

func TestDeselectDropsDetail(t *testing.T) {
	m := NewManager(catalog())

	m.Select("A", true)
	m.Select("B", true)
	m.UpdateDetail("A", FieldGSTPercentage, "5")
	m.Select("A", false)

	if m.IsSelected("A") {
		t.Fatal("A should not be selected")
	}
	if _, ok := m.Detail("A"); ok {
		t.Fatal("A detail should be gone")
	}
	if got := gst(t, m, "B"); got != "5" {
		t.Fatalf("B gst: got=%q", got)
	}
}

func TestSelectPreservesExistingDetail(t *testing.T) {
	m := NewManager(catalog())

	m.UpdateDetail("A", FieldSellingPrice, "50")
	m.Select("A", true)

	if d, _ := m.Detail("A"); d.SellingPrice != "50" {
		t.Fatalf("existing detail should survive selection, got %+v", d)
	}
}

func TestUnknownIDRecordsDetail(t *testing.T) {
	m := NewManager(catalog())

	m.UpdateDetail("ghost", FieldGSTPercentage, "3")
	if got := gst(t, m, "ghost"); got != "3" {
		t.Fatalf("ghost gst: got=%q", got)
	}
	if m.IsSelected("ghost") {
		t.Fatal("updating a detail must not select")
	}
}

func TestUnknownFieldLeavesNoDetail(t *testing.T) {
	m := NewManager(catalog())

	m.UpdateDetail("A", "colour", "red")
	if _, ok := m.Detail("A"); ok {
		t.Fatal("unknown field created a detail")
	}
	if len(m.Snapshot().Details) != 0 {
		t.Fatalf("snapshot details: %+v", m.Snapshot().Details)
	}
}

func TestResetAndSnapshotRoundTrip(t *testing.T) {
	m := NewManager(catalog())
	m.Select("A", true)
	m.Select("D", true)
	m.UpdateDetail("A", FieldGSTPercentage, "5")

	restored := Restore(m.Snapshot())
	if got := restored.Selected(); len(got) != 2 || got[0] != "A" || got[1] != "D" {
		t.Fatalf("selected after restore: %v", got)
	}
	restored.Select("B", true)
	if got := gst(t, restored, "B"); got != "5" {
		t.Fatalf("sibling index lost on restore, B gst=%q", got)
	}

	restored.Reset()
	if len(restored.Selected()) != 0 {
		t.Fatal("reset should clear selection")
	}
	if _, ok := restored.Detail("A"); ok {
		t.Fatal("reset should clear details")
	}
}
