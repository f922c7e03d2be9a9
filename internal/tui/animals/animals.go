// ABOUTME: Paginated animal list with name search for the TUI
// ABOUTME: Filters the loaded page while typing and asks the app for server pages

package animals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
	"github.com/uiopaws/pawsctl/internal/tui/widgets"
)

// PageRequestMsg asks the app to fetch a page of animals
type PageRequestMsg struct {
	Filter client.AnimalFilter
}

// OpenAnimalMsg asks the app to show one animal
type OpenAnimalMsg struct {
	ID int
}

// BackMsg is sent when the user leaves the list
type BackMsg struct{}

// List is the animal browser
type List struct {
	page      *client.Page[client.Animal]
	visible   []client.Animal
	pager     catalog.Pager
	query     string
	search    textinput.Model
	searching bool
	cursor    int
	loading   bool
	err       error
	width     int
}

// New creates an empty list; call Request for the first page
func New() *List {
	ti := textinput.New()
	ti.Prompt = icons.Search.String() + " "
	ti.Placeholder = "name"
	ti.CharLimit = 60
	return &List{pager: catalog.NewPager(), search: ti, loading: true}
}

// Request returns a command asking for the current page and query
func (l *List) Request() tea.Cmd {
	l.loading = true
	filter := client.AnimalFilter{AnimalName: l.query, Page: l.pager.Current}
	return func() tea.Msg { return PageRequestMsg{Filter: filter} }
}

// SetPage shows a fetched page
func (l *List) SetPage(page *client.Page[client.Animal]) {
	l.page, l.err, l.loading = page, nil, false
	l.pager.Update(page.CurrentPage, page.LastPage)
	l.cursor = 0
	l.refilter()
}

// SetError shows a failed fetch
func (l *List) SetError(err error) {
	l.err, l.loading = err, false
}

// SetWidth updates the render width
func (l *List) SetWidth(width int) {
	l.width = width
}

// Searching reports whether the search box has focus
func (l *List) Searching() bool {
	return l.searching
}

func (l *List) refilter() {
	if l.page == nil {
		l.visible = nil
		return
	}
	l.visible = catalog.FilterAnimals(l.page.Data, l.search.Value())
	if l.cursor >= len(l.visible) {
		l.cursor = max(0, len(l.visible)-1)
	}
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	if l.searching {
		return l.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.visible)-1 {
			l.cursor++
		}
	case "n", "right":
		if !l.loading && l.pager.Next() {
			return l, l.Request()
		}
	case "p", "left":
		if !l.loading && l.pager.Prev() {
			return l, l.Request()
		}
	case "/":
		l.searching = true
		l.search.Focus()
		return l, textinput.Blink
	case "enter":
		if len(l.visible) > 0 {
			id := l.visible[l.cursor].IDAnimal
			return l, func() tea.Msg { return OpenAnimalMsg{ID: id} }
		}
	case "esc", "b":
		return l, func() tea.Msg { return BackMsg{} }
	}
	return l, nil
}

func (l *List) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		l.searching = false
		l.search.Blur()
		l.query = strings.TrimSpace(l.search.Value())
		l.search.SetValue("")
		l.pager.Reset()
		return l, l.Request()
	case "esc":
		l.searching = false
		l.search.Blur()
		l.search.SetValue("")
		l.refilter()
		return l, nil
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	l.refilter()
	return l, cmd
}

// View implements tea.Model
func (l *List) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Animal.String() + " Animals"))
	sb.WriteString("\n")
	if l.searching {
		sb.WriteString(l.search.View())
		sb.WriteString("\n")
	} else if l.query != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Name matches %q", l.query)))
		sb.WriteString("\n")
	}

	switch {
	case l.err != nil:
		sb.WriteString(widgets.StatusText("Could not load animals: "+l.err.Error(), widgets.StatusCritical))
		return sb.String()
	case l.page == nil:
		sb.WriteString("Loading animals...")
		return sb.String()
	case len(l.visible) == 0:
		sb.WriteString("No animals match the current filters.\n")
	}

	for i, a := range l.visible {
		style := styles.Normal
		if i == l.cursor {
			style = styles.Selected
		}
		breed := "-"
		if a.Breed != nil {
			breed = a.Breed.BreedName
		}
		line := fmt.Sprintf("%-18s %-16s %-7s %-8s", a.AnimalName, breed, catalog.SexLabel(a.Sex), a.Size)
		sb.WriteString(styles.Cursor(i == l.cursor) + style.Render(line) + " " + widgets.AdoptionBadge(a.Status) + "\n")
	}

	status := fmt.Sprintf("Page %d of %d (%d animals)", l.pager.Current, l.pager.Last, l.page.Total)
	if l.loading {
		status += " • loading..."
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(status))
	return sb.String()
}
