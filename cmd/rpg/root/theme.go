package root

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cItem    = lipgloss.Color("39")  // teal
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Item  = lipgloss.NewStyle().Foreground(cItem)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

// printer writes styled game log lines.
type printer struct {
	w io.Writer
}

var _ world.Renderer = printer{}

func (p printer) Render(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(p.w, styleLine(l))
	}
}

func styleLine(l string) string {
	switch {
	case strings.Contains(l, "has been defeated by"):
		return Bad.Render(l)
	case strings.Contains(l, "appears!"), strings.Contains(l, "attack"):
		return Warn.Render(l)
	case strings.Contains(l, "leveled up"), strings.Contains(l, "defeated "), strings.HasPrefix(l, "Quest completed"):
		return Good.Render(l)
	case strings.Contains(l, "finds a"), strings.Contains(l, " uses "):
		return Item.Render(l)
	default:
		return l
	}
}

// statsPanel renders the stats view with inventory and quests.
func statsPanel(p *actor.Player) string {
	var sb strings.Builder
	sb.WriteString(Title.Render(fmt.Sprintf("%s's Stats", p.Name)))
	sb.WriteString("\n")
	for _, s := range p.Stats() {
		fmt.Fprintf(&sb, "%s %s\n", Key.Render(fmt.Sprintf("%-17s", s.Attribute+":")), s.Value)
	}
	sb.WriteString("\n" + Key.Render("Inventory") + "\n")
	for _, l := range p.ShowInventory() {
		sb.WriteString("  " + l + "\n")
	}
	if len(p.Quests) > 0 {
		sb.WriteString("\n" + Key.Render("Quests") + "\n")
		for _, q := range p.Quests {
			fmt.Fprintf(&sb, "  %s %s\n", q.Description, Muted.Render("("+q.Status()+")"))
		}
	}
	return Panel.Render(strings.TrimRight(sb.String(), "\n"))
}
