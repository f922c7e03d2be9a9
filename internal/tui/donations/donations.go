// ABOUTME: Donation needs screen showing collection progress per item
// ABOUTME: Cycles category filters and searches item names across pages

package donations

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

// PageRequestMsg asks the app to fetch a page of donation needs
type PageRequestMsg struct {
	Filter client.DonationFilter
}

// BackMsg is sent when the user leaves the screen
type BackMsg struct{}

// categories cycles through "all" then each category
var categories = append([]string{""}, client.DonationCategories...)

// List is the donation needs browser
type List struct {
	page      *client.Page[client.DonationItem]
	pager     catalog.Pager
	category  int
	query     string
	search    textinput.Model
	searching bool
	loading   bool
	err       error
	width     int
}

// New creates an empty list; call Request for the first page
func New() *List {
	ti := textinput.New()
	ti.Prompt = icons.Search.String() + " "
	ti.Placeholder = "item name"
	ti.CharLimit = 60
	return &List{pager: catalog.NewPager(), search: ti, loading: true}
}

// Filter is the filter for the current state
func (l *List) Filter() client.DonationFilter {
	return client.DonationFilter{
		Category: categories[l.category],
		Search:   l.query,
		Page:     l.pager.Current,
	}
}

// Request returns a command asking for the current page
func (l *List) Request() tea.Cmd {
	l.loading = true
	filter := l.Filter()
	return func() tea.Msg { return PageRequestMsg{Filter: filter} }
}

// SetPage shows a fetched page
func (l *List) SetPage(page *client.Page[client.DonationItem]) {
	l.page, l.err, l.loading = page, nil, false
	l.pager.Update(page.CurrentPage, page.LastPage)
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
		switch keyMsg.String() {
		case "enter":
			l.searching = false
			l.search.Blur()
			l.query = strings.TrimSpace(l.search.Value())
			l.pager.Reset()
			return l, l.Request()
		case "esc":
			l.searching = false
			l.search.Blur()
			l.search.SetValue(l.query)
			return l, nil
		}
		var cmd tea.Cmd
		l.search, cmd = l.search.Update(keyMsg)
		return l, cmd
	}

	if l.loading {
		if s := keyMsg.String(); s == "esc" || s == "b" {
			return l, func() tea.Msg { return BackMsg{} }
		}
		return l, nil
	}

	switch keyMsg.String() {
	case "n", "right":
		if l.pager.Next() {
			return l, l.Request()
		}
	case "p", "left":
		if l.pager.Prev() {
			return l, l.Request()
		}
	case "c":
		l.category = (l.category + 1) % len(categories)
		l.pager.Reset()
		return l, l.Request()
	case "/":
		l.searching = true
		l.search.Focus()
		return l, textinput.Blink
	case "esc", "b":
		return l, func() tea.Msg { return BackMsg{} }
	}
	return l, nil
}

func (l *List) categoryLabel() string {
	if c := categories[l.category]; c != "" {
		return c
	}
	return "All categories"
}

// View implements tea.Model
func (l *List) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Donation.String() + " Donation needs"))
	sb.WriteString("\n")

	filters := l.categoryLabel()
	if l.query != "" {
		filters += fmt.Sprintf(" • matching %q", l.query)
	}
	sb.WriteString(styles.Subtitle.Render(filters))
	sb.WriteString("\n")
	if l.searching {
		sb.WriteString(l.search.View())
		sb.WriteString("\n")
	}

	switch {
	case l.err != nil:
		sb.WriteString(widgets.StatusText("Could not load donation needs: "+l.err.Error(), widgets.StatusCritical))
		return sb.String()
	case l.page == nil:
		sb.WriteString("Loading donation needs...")
		return sb.String()
	case len(l.page.Data) == 0:
		sb.WriteString("No donation needs found.\n")
	}

	barWidth := 20
	if l.width > 100 {
		barWidth = 30
	}
	for _, item := range l.page.Data {
		pct := catalog.Progress(item.CollectedQuantity, item.QuantityNeeded)
		sb.WriteString(fmt.Sprintf("%-24s %-14s ", item.ItemName, item.Category))
		sb.WriteString(widgets.GoalBarWithLabel(item.CollectedQuantity, item.QuantityNeeded, pct, barWidth))
		sb.WriteString("\n")
	}

	status := fmt.Sprintf("Page %d of %d", l.pager.Current, l.pager.Last)
	if l.loading {
		status += " • loading..."
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(status))
	return sb.String()
}
