package app

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Node is a tree description of markup. The renderer only builds nodes;
// WriteHTML performs the actual serialization, which keeps the rendering
// logic testable without a live display surface.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr is one attribute of a markup node.
type Attr struct {
	Key string
	Val string
}

func el(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	if class != "" {
		n.Attrs = []Attr{{Key: "class", Val: class}}
	}
	return n
}

func text(s string) *Node {
	return &Node{Text: s}
}

// Render builds the complete content container for the given schedule and
// presentation mode. The container is always rebuilt from scratch, so nodes
// from a previous render can never leak into the next one. A nil schedule
// renders an empty container (the pre-load state).
func Render(schedule *WeeklySchedule, mode PresentationMode) *Node {
	container := el("div", "schedule-view")
	if schedule == nil {
		return container
	}
	switch mode {
	case ModeTable:
		container.Children = append(container.Children, renderTable(schedule))
	case ModeList:
		container.Children = append(container.Children, renderList(schedule)...)
	case ModeCalendar:
		container.Children = append(container.Children, renderCalendar(schedule))
	default:
		panic(fmt.Sprintf("unknown presentation mode %q", mode))
	}
	return container
}

// classCard is the shared data-to-markup mapping for one day's class.
func classCard(day *DaySchedule) *Node {
	return el("div", "class-card",
		el("span", "class-time", text(day.Time)),
		el("span", "class-name", text(day.ClassName)),
	)
}

func noClass() *Node {
	return el("div", "no-class", text(NoClassLabel))
}

// renderTable builds one header row of day labels and one body row with a
// cell per weekday, Monday→Sunday.
func renderTable(s *WeeklySchedule) *Node {
	head := el("tr", "")
	body := el("tr", "")
	for _, day := range Weekdays {
		head.Children = append(head.Children, el("th", "day-header", text(DayLabel(day))))
		cell := el("td", "day-cell")
		if ds := s.Day(day); ds != nil {
			cell.Children = append(cell.Children, classCard(ds))
		} else {
			cell.Children = append(cell.Children, noClass())
		}
		body.Children = append(body.Children, cell)
	}
	return el("table", "schedule-table",
		el("thead", "", head),
		el("tbody", "", body),
	)
}

// renderList builds one section per weekday that has a class. Days without a
// class produce no section at all.
func renderList(s *WeeklySchedule) []*Node {
	var sections []*Node
	for _, day := range s.ClassDays() {
		sections = append(sections, el("section", "day-section",
			el("h3", "day-header", text(DayLabel(day))),
			classCard(s.Day(day)),
		))
	}
	return sections
}

// renderCalendar builds a grid of seven day-cards, all days always shown.
func renderCalendar(s *WeeklySchedule) *Node {
	grid := el("div", "calendar-grid")
	for _, day := range Weekdays {
		card := el("div", "day-card",
			el("h3", "day-header", text(DayLabel(day))),
		)
		if ds := s.Day(day); ds != nil {
			card.Children = append(card.Children, classCard(ds))
		} else {
			card.Children = append(card.Children, noClass())
		}
		grid.Children = append(grid.Children, card)
	}
	return grid
}

// WriteHTML serializes a node tree. This is the only place markup is emitted.
func WriteHTML(w io.Writer, n *Node) error {
	if n.Tag == "" {
		_, err := io.WriteString(w, html.EscapeString(n.Text))
		return err
	}
	if _, err := fmt.Fprintf(w, "<%s", n.Tag); err != nil {
		return err
	}
	for _, attr := range n.Attrs {
		if _, err := fmt.Fprintf(w, " %s=%q", attr.Key, html.EscapeString(attr.Val)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := WriteHTML(w, child); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", n.Tag)
	return err
}

// RenderHTML is a convenience wrapper returning the serialized tree.
func RenderHTML(n *Node) string {
	var sb strings.Builder
	// strings.Builder writes cannot fail
	_ = WriteHTML(&sb, n)
	return sb.String()
}
