package styles

import (
	"fmt"
	"slices"
	"sync"
)

// Manager holds the registered themes and the current one.
type Manager struct {
	mu      sync.RWMutex
	themes  map[string]*Theme
	current *Theme
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

// NewManager registers the built-in themes and selects name, falling back
// to the dark theme when name is unknown.
func NewManager(name string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.Register(NewDarkTheme())
	m.Register(NewLightTheme())
	if err := m.SetTheme(name); err != nil {
		m.current = m.themes["dark"]
	}
	return m
}

// DefaultManager returns the process wide manager.
func DefaultManager() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = NewManager("dark")
	})
	return defaultManager
}

// CurrentTheme returns the theme selected on the default manager.
func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

func (m *Manager) Register(theme *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	theme, ok := m.themes[name]
	if !ok {
		return fmt.Errorf("theme %q not found", name)
	}
	m.current = theme
	return nil
}

// List returns the registered theme names in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
