package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const leftColumnWidth = 36

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	contentWidth := m.width - leftColumnWidth - 6
	if contentWidth < 20 {
		contentWidth = 20
	}
	mainHeight := m.height - 4
	if mainHeight < 6 {
		mainHeight = 6
	}

	recentHeight := 10
	playlistHeight := mainHeight - recentHeight - 3
	if playlistHeight < 3 {
		playlistHeight = 3
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSearch(),
		m.renderRecent(recentHeight),
		m.renderPlaylists(playlistHeight),
	)
	right := m.renderContent(contentWidth, mainHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	status := m.tracks.FormatLastUpdated()
	if m.trackSyncing {
		status = fmt.Sprintf("%s Syncing library... %d/%d",
			spinnerFrames[m.spinner], m.tracks.LoadedTracks, m.tracks.TotalTracks)
	}
	title := m.styles.Title.Render("music-tui")
	if status == "" {
		return " " + title
	}
	return " " + title + m.styles.Dim.Render("  "+status)
}

func (m Model) renderSearch() string {
	pane := m.styles.Pane
	if m.focus == focusSearch {
		pane = m.styles.FocusedPane
	}
	return pane.Width(leftColumnWidth).Render(m.searchInput.View())
}

func (m Model) renderRecent(height int) string {
	lines := make([]string, len(m.recent))
	for i, ref := range m.recent {
		lines[i] = truncate(ref.Album+" - "+ref.Artist, leftColumnWidth-2)
	}
	return m.renderList("Recently Added", lines, m.recentSelected, height,
		leftColumnWidth, m.focus == focusRecent)
}

func (m Model) renderPlaylists(height int) string {
	visible := m.visiblePlaylists()
	lines := make([]string, len(visible))
	for i, p := range visible {
		lines[i] = truncate(fmt.Sprintf("%s (%d)", p.Name, p.TrackCount), leftColumnWidth-2)
	}
	title := "Playlists"
	if m.playlistFilter != "" {
		title = fmt.Sprintf("Playlists /%s", m.playlistFilter)
	} else if m.playlistSyncing {
		title = "Playlists " + spinnerFrames[m.spinner]
	}
	return m.renderList(title, lines, m.playlistSelected, height,
		leftColumnWidth, m.focus == focusPlaylists)
}

func (m Model) renderContent(width, height int) string {
	rows := m.content
	title := m.contentTitle
	if m.focus == focusSearch {
		rows = m.searchResults
		title = fmt.Sprintf("Search results (%d)", len(rows))
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = truncate(formatRow(r, m.isPlaylistDetail && m.focus != focusSearch), width-2)
	}
	return m.renderList(title, lines, m.contentSelected, height, width,
		m.focus == focusContent || m.focus == focusSearch)
}

// formatRow lays out one content line; album views lead with the track
// number, playlist and search views with the artist.
func formatRow(r listRow, playlist bool) string {
	fav := " "
	if r.favorited {
		fav = "♥"
	}
	if !playlist && r.trackNum > 0 {
		return fmt.Sprintf("%2d %s %s  %s  %s", r.trackNum, fav, r.name, r.artist, r.time)
	}
	return fmt.Sprintf("%s %s  %s  %s", fav, r.name, r.artist, r.time)
}

// renderList draws a bordered pane with a title line and a scrolled window of
// items keeping the selection visible.
func (m Model) renderList(title string, lines []string, selected, height, width int, focused bool) string {
	pane := m.styles.Pane
	if focused {
		pane = m.styles.FocusedPane
	}

	visible := height - 3 // border + title
	if visible < 1 {
		visible = 1
	}
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	for i := start; i < end; i++ {
		b.WriteString("\n")
		if i == selected && focused {
			b.WriteString(m.styles.Selected.Render(lines[i]))
		} else {
			b.WriteString(lines[i])
		}
	}
	return pane.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	if m.loadProgress != "" {
		status = m.loadProgress
	}
	help := m.styles.Dim.Render("tab: switch  /: search  r: refresh playlist  q: quit")
	if status == "" {
		return " " + help
	}
	return " " + m.styles.Status.Render(status) + "  " + help
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
