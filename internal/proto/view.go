package proto

import "fmt"

// View selects which filtered listing the backend returns.
type View string

const (
	ViewHome    View = "home"
	ViewRecent  View = "recent"
	ViewStarred View = "starred"
	ViewTrash   View = "trash"
)

// Views lists every view in sidebar order.
var Views = []View{ViewHome, ViewRecent, ViewStarred, ViewTrash}

// ParseView parses a view name. The empty string maps to [ViewHome].
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewHome:
		return ViewHome, nil
	case ViewRecent, ViewStarred, ViewTrash:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view %q (want home, recent, starred or trash)", s)
}

// Title is the heading shown above the listing.
func (v View) Title() string {
	switch v {
	case ViewRecent:
		return "Recent"
	case ViewStarred:
		return "Starred"
	case ViewTrash:
		return "Trash"
	default:
		return "My Drive"
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (v *View) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
