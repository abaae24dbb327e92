package status

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const DefaultTTL = 4 * time.Second

// StatusCmp is the bottom line: the latest notification while it lasts,
// the key help otherwise.
type StatusCmp interface {
	util.Model
	ToggleFullHelp()
	SetKeyMap(keyMap help.KeyMap)
	Info() util.InfoMsg
}

type clearMsg struct {
	seq int
}

type statusCmp struct {
	info       util.InfoMsg
	seq        int
	width      int
	messageTTL time.Duration
	help       help.Model
	keyMap     help.KeyMap
}

func NewStatusCmp() StatusCmp {
	t := styles.CurrentTheme()
	h := help.New()
	h.Styles = t.S().Help
	return &statusCmp{
		messageTTL: DefaultTTL,
		help:       h,
	}
}

func (m *statusCmp) Init() tea.Cmd {
	return nil
}

func (m *statusCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case util.InfoMsg:
		m.info = msg
		m.seq++
		ttl := msg.TTL
		if ttl == 0 {
			ttl = m.messageTTL
		}
		return m, m.clearMessageCmd(m.seq, ttl)
	case clearMsg:
		// A newer message owns the line.
		if msg.seq == m.seq {
			m.info = util.InfoMsg{}
		}
	case util.ClearStatusMsg:
		m.info = util.InfoMsg{}
	}
	return m, nil
}

func (m *statusCmp) clearMessageCmd(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearMsg{seq: seq}
	})
}

func (m *statusCmp) View() string {
	t := styles.CurrentTheme()
	if m.info.Msg != "" {
		return m.infoMsg()
	}
	if m.keyMap == nil {
		return ""
	}
	return t.S().Base.Padding(0, 1).Render(ansi.Truncate(m.help.View(m.keyMap), max(0, m.width-2), "…"))
}

func (m *statusCmp) infoMsg() string {
	t := styles.CurrentTheme()
	message := ""
	infoType := ""
	switch m.info.Type {
	case util.InfoTypeError:
		infoType = t.S().Base.Background(t.Error).Foreground(t.White).Padding(0, 1).Render("ERROR")
		widthLeft := m.width - (ansi.StringWidth(infoType) + 2)
		info := ansi.Truncate(m.info.Msg, widthLeft, "…")
		message = t.S().Base.Background(t.Error).Width(widthLeft+2).Foreground(t.White).Padding(0, 1).Render(info)
	case util.InfoTypeWarn:
		infoType = t.S().Base.Foreground(t.BgOverlay).Background(t.Warning).Padding(0, 1).Render("WARNING")
		widthLeft := m.width - (ansi.StringWidth(infoType) + 2)
		info := ansi.Truncate(m.info.Msg, widthLeft, "…")
		message = t.S().Base.Foreground(t.BgOverlay).Width(widthLeft+2).Background(t.Warning).Padding(0, 1).Render(info)
	case util.InfoTypeSuccess:
		infoType = t.S().Base.Foreground(t.White).Background(t.Success).Padding(0, 1).Render("OKAY!")
		widthLeft := m.width - (ansi.StringWidth(infoType) + 2)
		info := ansi.Truncate(m.info.Msg, widthLeft, "…")
		message = t.S().Base.Background(t.Success).Width(widthLeft+2).Foreground(t.White).Padding(0, 1).Render(info)
	default:
		infoType = t.S().Base.Foreground(t.BgOverlay).Background(t.Info).Padding(0, 1).Render("OKAY!")
		widthLeft := m.width - (ansi.StringWidth(infoType) + 2)
		info := ansi.Truncate(m.info.Msg, widthLeft, "…")
		message = t.S().Base.Foreground(t.BgOverlay).Width(widthLeft+2).Background(t.Info).Padding(0, 1).Render(info)
	}
	return ansi.Truncate(infoType+message, m.width, "…")
}

func (m *statusCmp) ToggleFullHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m *statusCmp) SetKeyMap(keyMap help.KeyMap) {
	m.keyMap = keyMap
}

func (m *statusCmp) Info() util.InfoMsg {
	return m.info
}
