package snap

// maxHistorySize bounds the marker history; the oldest snapshot is
// evicted when the stack is full.
const maxHistorySize = 10

// snapshot is a full copy of the marker pair. Owner references are
// kept by identity and revalidated on use, not here.
type snapshot struct {
	primary   Marker
	secondary Marker
}

func (s *State) takeSnapshot() snapshot {
	return snapshot{primary: s.Primary, secondary: s.Secondary}
}

func (s *State) restore(snap snapshot) {
	s.Primary = snap.primary
	s.Secondary = snap.secondary
	s.requestRedraw()
}

// SaveState records the current marker pair before a change. If the
// cursor is not at the tip the states ahead of it are discarded
// first: the history is linear, not branching.
func (s *State) SaveState() {
	if !s.Primary.IsSet() {
		return
	}

	if s.cursor < 0 {
		// Drop the undone states; the restored state is re-appended
		// below as the new tip
		s.history = s.history[:len(s.history)+s.cursor]
		s.cursor = 0
	}

	s.history = append(s.history, s.takeSnapshot())
	if len(s.history) > maxHistorySize {
		s.history = s.history[1:]
	}
}

// HistoryLen returns the number of stored snapshots
func (s *State) HistoryLen() int { return len(s.history) }

// HistoryCursor returns the current cursor position (≤ 0, 0 = tip)
func (s *State) HistoryCursor() int { return s.cursor }

// CanGoBack reports whether an earlier marker state exists
func (s *State) CanGoBack() bool {
	return len(s.history) > 0 && s.cursor > -len(s.history)
}

// CanGoForward reports whether a later marker state exists
func (s *State) CanGoForward() bool {
	return s.cursor < 0
}

// GoBack restores the previous marker pair. Navigation is
// instantaneous: no animations are triggered. Returns false when
// already at the oldest state.
func (s *State) GoBack() bool {
	if !s.CanGoBack() {
		return false
	}
	if s.cursor == 0 {
		// Keep the live state so GoForward can return to it
		s.pending = s.takeSnapshot()
	}
	s.cursor--
	s.restore(s.history[len(s.history)+s.cursor])
	return true
}

// GoForward restores the next marker pair, or the live state the
// first GoBack departed from. Returns false when already at the tip.
func (s *State) GoForward() bool {
	if !s.CanGoForward() {
		return false
	}
	s.cursor++
	if s.cursor == 0 {
		s.restore(s.pending)
	} else {
		s.restore(s.history[len(s.history)+s.cursor])
	}
	return true
}
