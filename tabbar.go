package dockgui

// TabItem is one tab of a TabBar, bound to a hosted window.
type TabItem struct {
	ID     ID
	Window *Window

	// Order is the display position; settings persist it as Window.DockOrder.
	Order           int
	LastFrameActive int
	Width           float32
	Offset          float32
}

// TabBar is the ordered tab collection of a leaf dock node.
// It tracks the selected tab and a pending selection applied on the next update.
//
// Usage:
//
//	tb := NewTabBar(id)
//	tb.AddTab(w.TabID, w)
//	tb.NextSelectedTabID = w.TabID
//	tb.Update() // applies the pending selection
type TabBar struct {
	ID                ID
	SelectedTabID     ID
	NextSelectedTabID ID
	VisibleTabID      ID
	WantLayout        bool
	BarRect           Rect

	tabs []TabItem
}

// NewTabBar creates an empty tab bar.
func NewTabBar(id ID) *TabBar {
	return &TabBar{
		ID:   id,
		tabs: make([]TabItem, 0, 4),
	}
}

// Tabs returns the tabs in display order.
func (tb *TabBar) Tabs() []TabItem {
	return tb.tabs
}

// TabCount returns the number of tabs.
func (tb *TabBar) TabCount() int {
	return len(tb.tabs)
}

// AddTab appends a tab for window, honoring the window's persisted DockOrder.
// Adding an existing tab is a no-op.
func (tb *TabBar) AddTab(tabID ID, w *Window) {
	if tb.FindTabByID(tabID) != nil {
		return
	}
	tab := TabItem{ID: tabID, Window: w, Order: len(tb.tabs), LastFrameActive: -1}
	if w != nil && w.DockOrder >= 0 {
		// Insert by persisted order, tabs without one go last.
		at := len(tb.tabs)
		for i, other := range tb.tabs {
			if other.Window != nil && (other.Window.DockOrder < 0 || other.Window.DockOrder > w.DockOrder) {
				at = i
				break
			}
		}
		tb.tabs = append(tb.tabs, TabItem{})
		copy(tb.tabs[at+1:], tb.tabs[at:])
		tb.tabs[at] = tab
	} else {
		tb.tabs = append(tb.tabs, tab)
	}
	tb.renumber()
	tb.WantLayout = true
}

// RemoveTab removes a tab by id. Returns true if the tab was found and removed.
func (tb *TabBar) RemoveTab(tabID ID) bool {
	for i, t := range tb.tabs {
		if t.ID == tabID {
			tb.tabs = append(tb.tabs[:i], tb.tabs[i+1:]...)
			if tb.SelectedTabID == tabID {
				tb.SelectedTabID = 0
			}
			if tb.NextSelectedTabID == tabID {
				tb.NextSelectedTabID = 0
			}
			if tb.VisibleTabID == tabID {
				tb.VisibleTabID = 0
			}
			tb.renumber()
			tb.WantLayout = true
			return true
		}
	}
	return false
}

// FindTabByID returns the tab with tabID, or nil.
func (tb *TabBar) FindTabByID(tabID ID) *TabItem {
	if tabID == 0 {
		return nil
	}
	for i := range tb.tabs {
		if tb.tabs[i].ID == tabID {
			return &tb.tabs[i]
		}
	}
	return nil
}

// SelectNext selects the tab after the current one (wraps around).
func (tb *TabBar) SelectNext() {
	tb.cycle(1)
}

// SelectPrev selects the tab before the current one (wraps around).
func (tb *TabBar) SelectPrev() {
	tb.cycle(-1)
}

func (tb *TabBar) cycle(delta int) {
	n := len(tb.tabs)
	if n == 0 {
		return
	}
	cur := 0
	for i, t := range tb.tabs {
		if t.ID == tb.SelectedTabID {
			cur = i
			break
		}
	}
	tb.NextSelectedTabID = tb.tabs[((cur+delta)%n+n)%n].ID
}

// Update applies the pending selection and falls back to the first tab when
// the selected one vanished. It returns the selected tab id.
func (tb *TabBar) Update() ID {
	if tb.NextSelectedTabID != 0 && tb.FindTabByID(tb.NextSelectedTabID) != nil {
		tb.SelectedTabID = tb.NextSelectedTabID
	}
	tb.NextSelectedTabID = 0
	if tb.FindTabByID(tb.SelectedTabID) == nil {
		tb.SelectedTabID = 0
		if len(tb.tabs) > 0 {
			tb.SelectedTabID = tb.tabs[0].ID
		}
	}
	if tb.VisibleTabID == 0 || tb.FindTabByID(tb.VisibleTabID) == nil || tb.VisibleTabID != tb.SelectedTabID {
		tb.VisibleTabID = tb.SelectedTabID
	}
	return tb.SelectedTabID
}

// Layout assigns each tab a slot of width along the bar.
func (tb *TabBar) Layout(bar Rect, width float32) {
	tb.BarRect = bar
	if n := len(tb.tabs); n > 0 && width*float32(n) > bar.Width() {
		width = bar.Width() / float32(n)
	}
	for i := range tb.tabs {
		tb.tabs[i].Offset = float32(i) * width
		tb.tabs[i].Width = width
	}
	tb.WantLayout = false
}

// TabRect returns the screen rectangle of a laid-out tab.
func (tb *TabBar) TabRect(t *TabItem) Rect {
	return Rect{
		Min: Vec2{X: tb.BarRect.Min.X + t.Offset, Y: tb.BarRect.Min.Y},
		Max: Vec2{X: tb.BarRect.Min.X + t.Offset + t.Width, Y: tb.BarRect.Max.Y},
	}
}

// renumber refreshes display positions. Window.DockOrder is left untouched
// so that persisted orders of tabs added later still compare correctly.
func (tb *TabBar) renumber() {
	for i := range tb.tabs {
		tb.tabs[i].Order = i
	}
}
