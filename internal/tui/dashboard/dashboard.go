// ABOUTME: Dashboard component for the signed-in user's landing screen
// ABOUTME: Shows catalog counts and donation progress, varying by landing role

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
	"github.com/uiopaws/pawsctl/internal/tui/widgets"
)

// Source is the listing API the dashboard counts from
type Source interface {
	ListAnimals(ctx context.Context, f client.AnimalFilter) (*client.Page[client.Animal], error)
	ListDonationItems(ctx context.Context, f client.DonationFilter) (*client.Page[client.DonationItem], error)
}

// CatalogLoader loads species, breeds and shelters together
type CatalogLoader interface {
	LoadAll(ctx context.Context) (*catalog.Catalogs, error)
}

// Stats are the figures shown on the dashboard
type Stats struct {
	Animals       int
	Species       int
	Breeds        int
	Shelters      int
	DonationNeeds int
	// Collected share of the first page of donation needs, in percent
	DonationProgress float64
	CompletedNeeds   int
}

// Load fetches the dashboard figures concurrently
func Load(ctx context.Context, src Source, cats CatalogLoader) (*Stats, error) {
	var (
		stats     Stats
		animals   *client.Page[client.Animal]
		donations *client.Page[client.DonationItem]
		loaded    *catalog.Catalogs
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		animals, err = src.ListAnimals(gctx, client.AnimalFilter{Page: 1})
		return err
	})
	g.Go(func() (err error) {
		donations, err = src.ListDonationItems(gctx, client.DonationFilter{Page: 1})
		return err
	})
	g.Go(func() (err error) {
		loaded, err = cats.LoadAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}

	stats.Animals = max(animals.Total, len(animals.Data))
	stats.Species = len(loaded.Species)
	stats.Breeds = len(loaded.Breeds)
	stats.Shelters = len(loaded.Shelters)
	stats.DonationNeeds = max(donations.Total, len(donations.Data))

	var collected, needed int
	for _, item := range donations.Data {
		collected += min(item.CollectedQuantity, item.QuantityNeeded)
		needed += item.QuantityNeeded
		if item.QuantityNeeded > 0 && item.CollectedQuantity >= item.QuantityNeeded {
			stats.CompletedNeeds++
		}
	}
	stats.DonationProgress = catalog.Progress(collected, needed)
	return &stats, nil
}

// Dashboard renders the landing screen
type Dashboard struct {
	landing access.Landing
	user    *client.User
	stats   *Stats
	err     error
	width   int
	height  int
}

// New creates a dashboard for the given landing and profile
func New(landing access.Landing, user *client.User, width, height int) *Dashboard {
	return &Dashboard{landing: landing, user: user, width: width, height: height}
}

// SetStats replaces the figures and clears any error
func (d *Dashboard) SetStats(s *Stats) {
	d.stats, d.err = s, nil
}

// SetError records a failed load
func (d *Dashboard) SetError(err error) {
	d.err = err
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Title is the heading for the landing
func (d *Dashboard) Title() string {
	switch d.landing {
	case access.LandingSuperAdmin:
		return icons.SuperAdmin.String() + " Super admin dashboard"
	case access.LandingAdmin:
		return icons.Admin.String() + " Admin dashboard"
	}
	return icons.User.String() + " My dashboard"
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(d.Title()))
	sb.WriteString("\n")
	if d.user != nil {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Welcome, %s <%s>", d.user.FullName(), d.user.Email)))
		sb.WriteString("\n")
	}

	switch {
	case d.err != nil:
		sb.WriteString(widgets.StatusText("Could not load dashboard: "+d.err.Error(), widgets.StatusCritical))
	case d.stats == nil:
		sb.WriteString("Loading dashboard...")
	default:
		sb.WriteString(d.renderBlocks())
		if d.landing == access.LandingSuperAdmin && d.user != nil && len(d.user.Roles) > 0 {
			sb.WriteString("\n\n")
			sb.WriteString(d.renderRoles())
		}
	}

	return lipgloss.NewStyle().Width(d.width).Height(d.height).Render(sb.String())
}

func (d *Dashboard) renderBlocks() string {
	cfg := widgets.DefaultMetricBlockConfig()
	s := d.stats

	counts := []string{widgets.CountBlock(icons.Animal, "Animals", s.Animals, "in the catalog", cfg)}
	if d.landing == access.LandingUser {
		counts = append(counts,
			widgets.CountBlock(icons.Shelter, "Shelters", s.Shelters, "partner shelters", cfg),
			widgets.CountBlock(icons.Donation, "Needs", s.DonationNeeds, "open requests", cfg),
		)
	} else {
		counts = append(counts,
			widgets.CountBlock(icons.Species, "Species", s.Species, "registered", cfg),
			widgets.CountBlock(icons.Breed, "Breeds", s.Breeds, "registered", cfg),
			widgets.CountBlock(icons.Shelter, "Shelters", s.Shelters, "registered", cfg),
		)
	}

	goalCfg := cfg
	goalCfg.Width = 30
	goal := widgets.MetricBlockWithBar(icons.Donation, "Donations", s.DonationProgress,
		fmt.Sprintf("%d of %d needs met", s.CompletedNeeds, s.DonationNeeds), goalCfg)

	return lipgloss.JoinHorizontal(lipgloss.Top, counts...) + "\n" + goal
}

func (d *Dashboard) renderRoles() string {
	names := make([]string, len(d.user.Roles))
	for i, r := range d.user.Roles {
		names[i] = r.Name
	}
	return styles.KeyStyle.Render("Roles: ") + styles.ValueStyle.Render(strings.Join(names, ", "))
}
