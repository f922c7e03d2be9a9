// ABOUTME: Animal registration wizard as a bubbletea model
// ABOUTME: Uses huh forms per step; breed choices follow the selected species

package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// WizardCompleteMsg is sent when every step has been answered
type WizardCompleteMsg struct {
	Payload client.AnimalUpsertPayload
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects a new animal step by step
type Wizard struct {
	cats  *catalog.Catalogs
	form  *huh.Form
	step  int
	width int
	err   string

	// bound form values
	name        string
	sex         string
	age         string
	color       string
	speciesID   int
	shelterID   int
	size        string
	breedID     int
	status      string
	sterilized  bool
	description string
}

// Step names for progress indicator
var stepNames = []string{"Basics", "Classification", "Breed & Status"}

// createTheme returns a huh theme in the app palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().Foreground(styles.Muted).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Danger).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Danger)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(styles.Primary).SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().Foreground(styles.Text)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(styles.Muted)

	return t
}

func stringOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

// New creates a wizard over the loaded catalogs
func New(cats *catalog.Catalogs) *Wizard {
	w := &Wizard{
		cats:   cats,
		step:   1,
		sex:    client.AnimalSexes[0],
		age:    "1",
		size:   client.AnimalSizes[1],
		status: client.AnimalStatuses[0],
	}
	if len(cats.Species) > 0 {
		w.speciesID = cats.Species[0].IDSpecies
	}
	if len(cats.Shelters) > 0 {
		w.shelterID = cats.Shelters[0].IDShelter
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Luna").
				CharLimit(100).
				Value(&w.name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Sex").
				Options(stringOptions(client.AnimalSexes)...).
				Value(&w.sex),
			huh.NewInput().
				Title("Age (years)").
				CharLimit(3).
				Value(&w.age).
				Validate(validateAge),
			huh.NewInput().
				Title("Color").
				Placeholder("e.g., Negro con blanco").
				Value(&w.color),
		).Title("Step 1: Basics").
			Description("Who are we registering?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	species := make([]huh.Option[int], 0, len(w.cats.Species))
	for _, s := range w.cats.Species {
		species = append(species, huh.NewOption(s.SpeciesName, s.IDSpecies))
	}
	shelters := make([]huh.Option[int], 0, len(w.cats.Shelters))
	for _, s := range w.cats.Shelters {
		shelters = append(shelters, huh.NewOption(s.ShelterName, s.IDShelter))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Species").
				Description("Breeds in the next step follow this choice").
				Options(species...).
				Value(&w.speciesID),
			huh.NewSelect[int]().
				Title("Shelter").
				Options(shelters...).
				Value(&w.shelterID),
			huh.NewSelect[string]().
				Title("Size").
				Options(stringOptions(client.AnimalSizes)...).
				Value(&w.size),
		).Title("Step 2: Classification").
			Description("Where does the animal live?"),
	).WithTheme(createTheme())
}

// breedOptions lists the breeds of the chosen species
func (w *Wizard) breedOptions() []huh.Option[int] {
	breeds := catalog.BreedsForSpecies(w.cats.Breeds, w.speciesID)
	opts := make([]huh.Option[int], 0, len(breeds))
	for _, b := range breeds {
		opts = append(opts, huh.NewOption(b.BreedName, b.IDBreed))
	}
	return opts
}

func (w *Wizard) createStep3Form(breeds []huh.Option[int]) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Breed").
				Description(w.cats.SpeciesName(w.speciesID)).
				Options(breeds...).
				Value(&w.breedID),
			huh.NewSelect[string]().
				Title("Status").
				Options(stringOptions(client.AnimalStatuses)...).
				Value(&w.status),
			huh.NewConfirm().
				Title("Sterilized?").
				Value(&w.sterilized),
			huh.NewText().
				Title("Description").
				CharLimit(1000).
				Value(&w.description),
		).Title("Step 3: Breed & Status"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}
	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	w.err = ""
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		breeds := w.breedOptions()
		if len(breeds) == 0 {
			w.err = fmt.Sprintf("No breeds registered for %s; pick another species", w.cats.SpeciesName(w.speciesID))
			w.form = w.createStep2Form()
			return w, w.form.Init()
		}
		w.breedID = breeds[0].Value
		w.step = 3
		w.form = w.createStep3Form(breeds)
		return w, w.form.Init()

	case 3:
		payload := w.Payload()
		return w, func() tea.Msg {
			return WizardCompleteMsg{Payload: payload}
		}
	}
	return w, nil
}

// Payload returns the animal described by the answers so far
func (w *Wizard) Payload() client.AnimalUpsertPayload {
	age, _ := strconv.Atoi(strings.TrimSpace(w.age))
	return client.AnimalUpsertPayload{
		AnimalName:   strings.TrimSpace(w.name),
		Status:       w.status,
		Sex:          w.sex,
		Size:         w.size,
		IDBreed:      w.breedID,
		IDShelter:    w.shelterID,
		IsSterilized: w.sterilized,
		Age:          age,
		Color:        strings.TrimSpace(w.color),
		Description:  strings.TrimSpace(w.description),
	}
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	if w.err != "" {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + w.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress draws the step list and a filled bar in a titled box
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)
	muted := lipgloss.NewStyle().Foreground(styles.Muted)
	current := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	steps := make([]string, len(stepNames))
	for i, name := range stepNames {
		switch n := i + 1; {
		case n < w.step:
			steps[i] = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String()) + " " + muted.Render(name)
		case n == w.step:
			steps[i] = current.Render("● " + name)
		default:
			steps[i] = muted.Render("○ " + name)
		}
	}
	line := strings.Join(steps, "    ")

	barWidth := width - 5
	filled := w.step * barWidth / len(stepNames)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filled))

	title := icons.Animal.String() + " New animal"
	return strings.Join([]string{
		muted.Render("┌─ ") + current.Render(title) + muted.Render(" "+strings.Repeat("─", max(0, width-5-lipgloss.Width(title)))+"┐"),
		muted.Render("│ ") + line + strings.Repeat(" ", max(0, width-4-lipgloss.Width(line))) + muted.Render(" │"),
		muted.Render("│  ") + bar + muted.Render(" │"),
		muted.Render("└" + strings.Repeat("─", width-2) + "┘"),
	}, "\n")
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateAge(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return errors.New("must be zero or a positive number")
	}
	return nil
}
