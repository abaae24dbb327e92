package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/components/uploads"
	"github.com/driveterm/drive/internal/tui/styles"
)

const (
	sidebarWidth = 22
	cardWidth    = 26
	cardHeight   = 4
	// header, blank line, breadcrumbs, search, section title
	chromeHeight = 5
)

func (p *dashboardPage) mainWidth() int {
	return max(20, p.width-sidebarWidth-1)
}

func (p *dashboardPage) columns() int {
	return max(1, p.mainWidth()/cardWidth)
}

func (p *dashboardPage) listHeight() int {
	return max(1, p.height-chromeHeight)
}

func (p *dashboardPage) visibleRows() int {
	if p.layout == config.LayoutGrid {
		return max(1, p.listHeight()/cardHeight)
	}
	// column titles take a line
	return max(1, p.listHeight()-1)
}

func (p *dashboardPage) View() string {
	t := styles.CurrentTheme()
	state := p.drive.Snapshot()
	files := p.drive.Filtered()

	main := lipgloss.JoinVertical(lipgloss.Left,
		p.breadcrumbs(state),
		p.searchLine(),
		p.sectionTitle(state, len(files)),
		p.listing(state, files),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		p.sidebar(state),
		t.S().Base.Foreground(t.Border).Render(strings.Repeat("│\n", max(0, p.height-3))+"│"),
		t.S().Base.PaddingLeft(1).Width(p.mainWidth()).Render(main),
	)
	return lipgloss.JoinVertical(lipgloss.Left, p.header.View(), "", body)
}

func (p *dashboardPage) sidebar(state drive.State) string {
	t := styles.CurrentTheme()
	w := sidebarWidth - 2
	parts := []string{core.Section("Views", w)}
	for i, v := range proto.Views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == state.View {
			parts = append(parts, t.S().TextSelected.Width(w).Render("▌"+label))
			continue
		}
		parts = append(parts, t.S().Muted.Width(w).Render(" "+label))
	}
	if block := uploads.RenderUploadBlock(&p.tracker, uploads.RenderOptions{
		MaxWidth: w,
		MaxItems: 5,
	}); block != "" {
		parts = append(parts, "", core.Section("Uploads", w), uploads.RenderUploadSummary(&p.tracker, w), block)
	}
	return t.S().Base.Width(sidebarWidth).PaddingLeft(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (p *dashboardPage) breadcrumbs(state drive.State) string {
	t := styles.CurrentTheme()
	sep := t.S().Subtle.Render(" › ")
	crumbs := []string{state.Title()}
	for _, seg := range state.Path {
		crumbs = append(crumbs, seg.Name)
	}
	rendered := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			rendered[i] = t.S().Title.Render(c)
		} else {
			rendered[i] = t.S().Muted.Render(c)
		}
	}
	return ansi.Truncate(strings.Join(rendered, sep), p.mainWidth()-1, "…")
}

func (p *dashboardPage) searchLine() string {
	t := styles.CurrentTheme()
	if !p.searching && p.search.Value() == "" {
		return t.S().Subtle.Render(p.keyMap.Search.Help().Key + " search")
	}
	return p.search.View()
}

func (p *dashboardPage) sectionTitle(state drive.State, count int) string {
	t := styles.CurrentTheme()
	title := fmt.Sprintf("%s (%d)", state.Title(), count)
	if state.Loading {
		title += " " + t.S().Subtle.Render("loading...")
	}
	return core.Section(title, p.mainWidth()-1)
}

func (p *dashboardPage) listing(state drive.State, files []proto.FileEntry) string {
	t := styles.CurrentTheme()
	if len(files) == 0 {
		return t.S().Muted.PaddingTop(1).Render(emptyText(state))
	}
	if p.layout == config.LayoutList {
		return p.list(files)
	}
	return p.grid(files)
}

func emptyText(state drive.State) string {
	switch {
	case state.Loading && !state.Loaded:
		return "Loading files..."
	case state.Search != "":
		return fmt.Sprintf("No files match %q", state.Search)
	case state.View == proto.ViewTrash:
		return "Trash is empty"
	case state.View == proto.ViewStarred:
		return "No starred files yet"
	case state.View == proto.ViewRecent:
		return "No recent files"
	case state.FolderID != "":
		return "This folder is empty"
	default:
		return "No files yet. Press u to upload or n to create a folder."
	}
}

func icon(entry proto.FileEntry) string {
	return styles.CurrentTheme().KindIcon(string(entry.Kind())).Render()
}

func star(entry proto.FileEntry) string {
	t := styles.CurrentTheme()
	if entry.IsStarred {
		return t.S().Warning.Render("★")
	}
	return " "
}

func sizeText(entry proto.FileEntry) string {
	if entry.IsFolder() {
		return "Folder"
	}
	return drive.FormatFileSize(entry.FileSize)
}

func (p *dashboardPage) grid(files []proto.FileEntry) string {
	t := styles.CurrentTheme()
	cols := p.columns()
	inner := cardWidth - 4
	first := p.offset * cols
	last := min(len(files), first+p.visibleRows()*cols)

	var rows []string
	for start := first; start < last; start += cols {
		var cards []string
		for i := start; i < min(start+cols, last); i++ {
			f := files[i]
			style := t.S().Card
			if i == p.cursor {
				style = t.S().CardSelected
			}
			nameWidth := inner - lipgloss.Width(icon(f)) - 3
			top := icon(f) + " " + ansi.Truncate(f.FileName, nameWidth, "…") + " "
			top = lipgloss.NewStyle().Width(inner - 1).Render(top)
			meta := t.S().Subtle.Render(ansi.Truncate(sizeText(f)+" · "+drive.FormatDate(f.UploadedAt), inner, "…"))
			cards = append(cards, style.Width(cardWidth-2).Render(lipgloss.JoinVertical(lipgloss.Left, top+star(f), meta)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p *dashboardPage) list(files []proto.FileEntry) string {
	t := styles.CurrentTheme()
	const (
		sizeWidth = 11
		dateWidth = 13
		agoWidth  = 16
	)
	width := p.mainWidth() - 1
	nameWidth := max(8, width-sizeWidth-dateWidth-agoWidth-6)

	row := func(name, size, date, ago string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(nameWidth+6).Render(name),
			lipgloss.NewStyle().Width(sizeWidth).Render(size),
			lipgloss.NewStyle().Width(dateWidth).Render(date),
			lipgloss.NewStyle().Width(agoWidth).Render(ago),
		)
	}

	lines := []string{t.S().Subtle.Render(row("Name", "Size", "Uploaded", ""))}
	first := p.offset
	last := min(len(files), first+p.visibleRows())
	for i := first; i < last; i++ {
		f := files[i]
		name := icon(f) + " " + star(f) + " " + ansi.Truncate(f.FileName, nameWidth, "…")
		line := row(name, sizeText(f), drive.FormatDate(f.UploadedAt), drive.FormatRelative(f.UploadedAt))
		if i == p.cursor {
			line = t.S().TextSelected.Render(ansi.Strip(line))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
