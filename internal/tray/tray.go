// Package tray provides the macOS menu bar interface for Kathak.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the menu bar application.
type Tray struct {
	profiles        []string
	activeProfile   string
	onToggle        func(enabled bool)
	onProfileSelect func(name string)
	onSettings      func()
	onQuit          func()
	enabled         bool
	mu              sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuLastAction *systray.MenuItem
	menuProfiles   map[string]*systray.MenuItem
}

// New creates a new Tray listing the given control profiles. The tray
// starts in the enabled state.
func New(profiles []string, activeProfile string) *Tray {
	return &Tray{
		profiles:      profiles,
		activeProfile: activeProfile,
		enabled:       true,
		menuProfiles:  make(map[string]*systray.MenuItem),
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnProfileSelect sets the callback function to be called when a profile is selected.
func (t *Tray) OnProfileSelect(fn func(name string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onProfileSelect = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the menu bar application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Kathak")
	systray.SetTooltip("Kathak Gesture Control")

	t.menuToggle = systray.AddMenuItem("● Enabled", "Toggle gesture control")
	systray.AddSeparator()

	t.menuLastAction = systray.AddMenuItem("Last: none", "Last injected command")
	t.menuLastAction.Disable()
	systray.AddSeparator()

	// One entry per control profile; the active one carries a marker.
	for _, name := range t.profiles {
		title := "  " + name
		if name == t.activeProfile {
			title = "✓ " + name
		}
		item := systray.AddMenuItem(title, "Switch control profile")
		t.menuProfiles[name] = item

		go func(name string, item *systray.MenuItem) {
			for range item.ClickedCh {
				t.handleProfileSelect(name)
			}
		}(name, item)
	}
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Kathak")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Enabled")
	} else {
		t.menuToggle.SetTitle("○ Disabled")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleProfileSelect handles a click on one of the profile menu items.
func (t *Tray) handleProfileSelect(name string) {
	t.mu.Lock()
	t.activeProfile = name
	for n, item := range t.menuProfiles {
		if n == name {
			item.SetTitle("✓ " + n)
		} else {
			item.SetTitle("  " + n)
		}
	}
	callback := t.onProfileSelect
	t.mu.Unlock()

	if callback != nil {
		callback(name)
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastAction updates the last injected command display in the menu.
func (t *Tray) SetLastAction(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastAction != nil {
		if name == "" {
			t.menuLastAction.SetTitle("Last: none")
		} else {
			t.menuLastAction.SetTitle("Last: " + name)
		}
	}
}

// SetActiveProfile updates the profile markers, for changes made
// outside the tray (API or settings UI).
func (t *Tray) SetActiveProfile(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeProfile = name
	for n, item := range t.menuProfiles {
		if n == name {
			item.SetTitle("✓ " + n)
		} else {
			item.SetTitle("  " + n)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
