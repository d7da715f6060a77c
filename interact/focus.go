package interact

// None marks an empty focus slot
const None = -1

// Focus is the hover / focus / lock state machine
// The active index resolves as locked, then focused, then hovered
type Focus struct {
	Hover  int
	Focus  int
	Locked int
}

// NewFocus returns an empty state
func NewFocus() Focus {
	return Focus{Hover: None, Focus: None, Locked: None}
}

// Active returns the effective index or None
func (f *Focus) Active() int {
	switch {
	case f.Locked != None:
		return f.Locked
	case f.Focus != None:
		return f.Focus
	}
	return f.Hover
}

// SetHover updates the hover slot, reporting whether it changed
func (f *Focus) SetHover(i int) bool {
	if f.Hover == i {
		return false
	}
	f.Hover = i
	return true
}

// SetFocus focuses i unless out of range or another index is locked
func (f *Focus) SetFocus(i, n int) {
	if i < 0 || i >= n {
		return
	}
	if f.Locked != None && f.Locked != i {
		return
	}
	f.Focus = i
}

// Unfocus clears focus on i when nothing is locked
func (f *Focus) Unfocus(i int) {
	if f.Locked != None {
		return
	}
	if f.Focus == i {
		f.Focus = None
	}
}

// Lock locks and focuses i when in range
func (f *Focus) Lock(i, n int) {
	if i < 0 || i >= n {
		return
	}
	f.Locked = i
	f.Focus = i
}

// Release clears lock and focus, keeping hover
func (f *Focus) Release() {
	f.Locked = None
	f.Focus = None
}

// Reset clears every slot
func (f *Focus) Reset() {
	*f = NewFocus()
}

// Clamp drops any index that no longer fits n entities
func (f *Focus) Clamp(n int) {
	for _, p := range []*int{&f.Hover, &f.Focus, &f.Locked} {
		if *p >= n || *p < None {
			*p = None
		}
	}
}
