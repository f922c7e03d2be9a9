// ABOUTME: Donation needs command for the paws CLI
// ABOUTME: Lists what shelters need and how much has been collected

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
)

var donationFilter client.DonationFilter

var donationsCmd = &cobra.Command{
	Use:   "donations",
	Short: "Browse donation needs",
}

var donationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List donation needs",
	Run: runWith(func(ctx context.Context, w io.Writer, _ []string) int {
		return runDonationsList(ctx, w, donationFilter)
	}),
}

func init() {
	rootCmd.AddCommand(donationsCmd)
	donationsCmd.AddCommand(donationsListCmd)
	f := donationsListCmd.Flags()
	f.StringVar(&donationFilter.Category, "category", "", "Category: "+strings.Join(client.DonationCategories, ", "))
	f.IntVar(&donationFilter.IDShelter, "shelter", 0, "Shelter id")
	f.StringVar(&donationFilter.Search, "search", "", "Search item names")
	f.IntVar(&donationFilter.Page, "page", 1, "Page number")
}

// runDonationsList fetches donation needs and returns exit code
func runDonationsList(ctx context.Context, w io.Writer, filter client.DonationFilter) int {
	d, err := depsFrom(ctx)
	if err != nil {
		return fail(w, err)
	}
	if filter.Category == catalog.AllOption {
		filter.Category = ""
	}

	page, err := d.api.ListDonationItems(ctx, filter)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
		return 0
	}
	fmt.Fprintln(w, formatDonationsHuman(page))
	return 0
}

// formatDonationsHuman renders donation needs with collection progress
func formatDonationsHuman(page *client.Page[client.DonationItem]) string {
	if len(page.Data) == 0 {
		return "No donation needs found."
	}
	rows := make([][]string, 0, len(page.Data))
	for _, item := range page.Data {
		pct := catalog.Progress(item.CollectedQuantity, item.QuantityNeeded)
		rows = append(rows, []string{
			strconv.Itoa(item.IDDonationItemCatalog),
			item.ItemName,
			item.Category,
			fmt.Sprintf("%d / %d", item.CollectedQuantity, item.QuantityNeeded),
			fmt.Sprintf("%.0f%%", pct),
		})
	}
	table := formatTable([]string{"ID", "Item", "Category", "Collected", "Progress"}, rows)
	return fmt.Sprintf("%s\nPage %d of %d", table, max(page.CurrentPage, 1), max(page.LastPage, 1))
}
