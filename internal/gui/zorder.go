package gui

// addToDrawList places c at the top of its z band: above every normal
// sibling, and above always-on-top siblings only if c is always-on-top.
func (w *Window) addToDrawList(c *Window) {
	w.drawList = removeHandle(w.drawList, c.handle)
	if c.alwaysOnTop {
		w.drawList = append(w.drawList, c.handle)
		return
	}
	pos := len(w.drawList)
	for i, h := range w.drawList {
		if s := w.rt.lookupWindow(h); s != nil && s.alwaysOnTop {
			pos = i
			break
		}
	}
	w.insertDrawList(pos, c.handle)
}

// addToDrawListBottom places c at the bottom of its z band
func (w *Window) addToDrawListBottom(c *Window) {
	w.drawList = removeHandle(w.drawList, c.handle)
	pos := 0
	if c.alwaysOnTop {
		pos = len(w.drawList)
		for i, h := range w.drawList {
			if s := w.rt.lookupWindow(h); s != nil && s.alwaysOnTop {
				pos = i
				break
			}
		}
	}
	w.insertDrawList(pos, c.handle)
}

func (w *Window) insertDrawList(pos int, h Handle) {
	w.drawList = append(w.drawList, Handle{})
	copy(w.drawList[pos+1:], w.drawList[pos:])
	w.drawList[pos] = h
}

func (w *Window) drawIndex(h Handle) int {
	for i, x := range w.drawList {
		if x == h {
			return i
		}
	}
	return -1
}

// ZIndex returns the position of w among its siblings, 0 being the bottom.
// A window without a parent reports -1.
func (w *Window) ZIndex() int {
	p := w.Parent()
	if p == nil {
		return -1
	}
	return p.drawIndex(w.handle)
}

// IsTopOfZOrder reports whether no sibling in w's band is drawn above it
func (w *Window) IsTopOfZOrder() bool {
	p := w.Parent()
	if p == nil {
		return true
	}
	for _, h := range p.drawList[p.drawIndex(w.handle)+1:] {
		if s := w.rt.lookupWindow(h); s != nil && s.alwaysOnTop == w.alwaysOnTop {
			return false
		}
	}
	return true
}

// MoveToFront raises w to the top of its band and raises its ancestors
// the same way.
func (w *Window) MoveToFront() {
	p := w.Parent()
	if p == nil {
		return
	}
	p.MoveToFront()
	if !w.zOrdering {
		return
	}
	before := p.drawIndex(w.handle)
	p.addToDrawList(w)
	if p.drawIndex(w.handle) != before {
		w.zOrderChanged()
	}
}

// MoveToBack lowers w to the bottom of its band
func (w *Window) MoveToBack() {
	p := w.Parent()
	if p == nil || !w.zOrdering {
		return
	}
	before := p.drawIndex(w.handle)
	p.addToDrawListBottom(w)
	if p.drawIndex(w.handle) != before {
		w.zOrderChanged()
	}
}

// MoveInFront places w directly above the sibling other. Windows in
// different bands are not reordered across the band boundary.
func (w *Window) MoveInFront(other *Window) {
	w.moveRelative(other, 1)
}

// MoveBehind places w directly below the sibling other
func (w *Window) MoveBehind(other *Window) {
	w.moveRelative(other, 0)
}

func (w *Window) moveRelative(other *Window, offset int) {
	p := w.Parent()
	if p == nil || other == nil || other == w || other.parent != w.parent || !w.zOrdering {
		return
	}
	if other.alwaysOnTop != w.alwaysOnTop {
		if w.alwaysOnTop == (offset == 1) {
			return
		}
		if offset == 1 {
			p.addToDrawList(w)
		} else {
			p.addToDrawListBottom(w)
		}
		w.zOrderChanged()
		return
	}
	before := p.drawIndex(w.handle)
	p.drawList = removeHandle(p.drawList, w.handle)
	p.insertDrawList(p.drawIndex(other.handle)+offset, w.handle)
	if p.drawIndex(w.handle) != before {
		w.zOrderChanged()
	}
}

// SetAlwaysOnTop moves w into or out of the always-on-top band
func (w *Window) SetAlwaysOnTop(b bool) {
	if b == w.alwaysOnTop {
		return
	}
	w.alwaysOnTop = b
	if p := w.Parent(); p != nil {
		p.addToDrawList(w)
		w.zOrderChanged()
	}
}

func (w *Window) zOrderChanged() {
	if p := w.Parent(); p != nil {
		p.Invalidate(false)
	}
	w.Invalidate(true)
	w.fire(EventZOrderChanged, w.args())
}

// IsActive reports whether w is the active window among its siblings
func (w *Window) IsActive() bool { return w.active }

// Activate raises w, deactivates the siblings that were active and marks w
// and its ancestors active.
func (w *Window) Activate() {
	w.MoveToFront()
	for c := w; c != nil; c = c.Parent() {
		p := c.Parent()
		if p != nil {
			for _, h := range p.children {
				if s := w.rt.lookupWindow(h); s != nil && s != c && s.active {
					s.Deactivate(c)
				}
			}
		}
		if !c.active {
			c.active = true
			c.Invalidate(false)
			c.fire(EventActivated, &ActivationArgs{Window: c.handle})
		}
	}
}

// Deactivate clears the active flag of w and its active descendants.
// other identifies the window that took activation, if any.
func (w *Window) Deactivate(other *Window) {
	var oh Handle
	if other != nil {
		oh = other.handle
	}
	for _, h := range w.children {
		if c := w.rt.lookupWindow(h); c != nil && c.active {
			c.Deactivate(other)
		}
	}
	if !w.active {
		return
	}
	w.active = false
	w.Invalidate(false)
	w.fire(EventDeactivated, &ActivationArgs{Window: w.handle, Other: oh})
}
