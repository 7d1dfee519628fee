package app

import "sync"

// ViewState holds the currently selected presentation mode.
type ViewState struct {
	mu   sync.RWMutex
	mode PresentationMode
}

// NewViewState starts in table mode.
func NewViewState() *ViewState {
	return &ViewState{mode: ModeTable}
}

// SwitchTo replaces the active mode wholesale. Switching to the current mode
// is a consistent redraw with no semantic change.
func (v *ViewState) SwitchTo(mode PresentationMode) {
	v.mu.Lock()
	v.mode = mode
	v.mu.Unlock()
}

// Current returns the active presentation mode.
func (v *ViewState) Current() PresentationMode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode
}
