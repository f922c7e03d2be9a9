// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, role gating, and routes input to child components

package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/access"
	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/session"
	"github.com/uiopaws/pawsctl/internal/tui/animals"
	"github.com/uiopaws/pawsctl/internal/tui/dashboard"
	"github.com/uiopaws/pawsctl/internal/tui/detail"
	"github.com/uiopaws/pawsctl/internal/tui/donations"
	"github.com/uiopaws/pawsctl/internal/tui/filepicker"
	"github.com/uiopaws/pawsctl/internal/tui/gallery"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/login"
	"github.com/uiopaws/pawsctl/internal/tui/menu"
	"github.com/uiopaws/pawsctl/internal/tui/recentfiles"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
	"github.com/uiopaws/pawsctl/internal/tui/widgets"
	"github.com/uiopaws/pawsctl/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenAnimals
	ScreenDetail
	ScreenDonations
	ScreenWizard
	ScreenPhotoPicker
)

// Layout constants
const (
	minTerminalWidth = 80
	panelPadding     = 4

	catalogSweepInterval = time.Minute
)

// Options wires the TUI to the API and the session
type Options struct {
	Client    *client.Client
	Session   *session.Manager
	Catalogs  *catalog.Service
	ConfigDir string
}

var adminGuard = access.Require("Admin")

type loginResultMsg struct {
	err error
}

type dashboardLoadedMsg struct {
	stats *dashboard.Stats
	err   error
}

type animalsLoadedMsg struct {
	page *client.Page[client.Animal]
	err  error
}

type animalLoadedMsg struct {
	animal *client.Animal
	err    error
}

type donationsLoadedMsg struct {
	page *client.Page[client.DonationItem]
	err  error
}

type catalogsLoadedMsg struct {
	cats *catalog.Catalogs
	err  error
}

type animalCreatedMsg struct {
	animal *client.Animal
	err    error
}

type photoUploadedMsg struct {
	animalID int
	err      error
}

// App is the root model for the TUI
type App struct {
	ctx     context.Context
	api     *client.Client
	session *session.Manager
	cats    *catalog.Service

	screen     Screen
	width      int
	height     int
	lastUpdate time.Time
	notice     string
	noticeLvl  widgets.StatusLevel
	afterLogin *menu.Entry

	// Child models
	menu         *menu.Menu
	loginScreen  *login.Login
	dashboard    *dashboard.Dashboard
	animals      *animals.List
	detail       *detail.Detail
	donations    *donations.List
	wizardScreen *wizard.Wizard
	photoPicker  *filepicker.FilePicker

	recentPhotos *recentfiles.RecentFiles
}

// New creates the application. The session must already be hydrated.
func New(ctx context.Context, opts Options) *App {
	return &App{
		ctx:          ctx,
		api:          opts.Client,
		session:      opts.Session,
		cats:         opts.Catalogs,
		screen:       ScreenMenu,
		menu:         menu.New(opts.Session),
		recentPhotos: recentfiles.New(opts.ConfigDir),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("UIO Paws")
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.resize(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.notice = ""
		return a.routeKey(msg)

	case menu.SelectedMsg:
		return a.handleEntry(msg.Entry, msg.Decision)

	case login.SubmitMsg:
		return a, a.signIn(msg.Email, msg.Password)

	case login.CancelledMsg:
		a.afterLogin = nil
		return a.toMenu()

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case dashboardLoadedMsg:
		if a.dashboard != nil {
			if msg.err != nil {
				a.dashboard.SetError(msg.err)
			} else {
				a.dashboard.SetStats(msg.stats)
				a.lastUpdate = time.Now()
			}
		}
		return a, nil

	case animals.PageRequestMsg:
		return a, a.loadAnimals(msg.Filter)

	case animalsLoadedMsg:
		if a.animals != nil {
			if msg.err != nil {
				a.animals.SetError(msg.err)
			} else {
				a.animals.SetPage(msg.page)
				a.lastUpdate = time.Now()
			}
		}
		return a, nil

	case animals.OpenAnimalMsg:
		return a, a.loadAnimal(msg.ID)

	case animals.BackMsg, donations.BackMsg:
		return a.toMenu()

	case animalLoadedMsg:
		if msg.err != nil {
			a.setNotice("Could not load animal: "+msg.err.Error(), widgets.StatusCritical)
			return a, nil
		}
		a.detail = detail.New(msg.animal, a.api.Origin(), a.contentWidth())
		a.screen = ScreenDetail
		return a, nil

	case donations.PageRequestMsg:
		return a, a.loadDonations(msg.Filter)

	case donationsLoadedMsg:
		if a.donations != nil {
			if msg.err != nil {
				a.donations.SetError(msg.err)
			} else {
				a.donations.SetPage(msg.page)
				a.lastUpdate = time.Now()
			}
		}
		return a, nil

	case catalogsLoadedMsg:
		if msg.err != nil {
			a.setNotice("Could not load catalogs: "+msg.err.Error(), widgets.StatusCritical)
			return a.toMenu()
		}
		a.wizardScreen = wizard.New(msg.cats)
		a.wizardScreen.SetWidth(a.contentWidth())
		a.screen = ScreenWizard
		return a, a.wizardScreen.Init()

	case wizard.WizardCompleteMsg:
		return a, a.createAnimal(msg.Payload)

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		return a.toMenu()

	case animalCreatedMsg:
		return a.handleAnimalCreated(msg)

	case filepicker.FileSelectedMsg:
		return a.handlePhotoSelected(msg)

	case filepicker.CancelledMsg:
		a.photoPicker = nil
		a.screen = ScreenDetail
		return a, nil

	case photoUploadedMsg:
		return a.handlePhotoUploaded(msg)
	}

	// huh forms, spinners and text inputs need their internal messages
	return a.forward(msg)
}

func (a *App) resize(msg tea.WindowSizeMsg) tea.Cmd {
	if a.dashboard != nil {
		a.dashboard.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.animals != nil {
		a.animals.SetWidth(a.contentWidth())
	}
	if a.donations != nil {
		a.donations.SetWidth(a.contentWidth())
	}
	if a.detail != nil {
		a.detail.SetWidth(a.contentWidth())
	}
	if a.photoPicker != nil {
		a.photoPicker.Update(msg)
	}
	if a.wizardScreen != nil {
		_, cmd := a.wizardScreen.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.screen == ScreenLogin && a.loginScreen != nil:
		_, cmd = a.loginScreen.Update(msg)
	case a.screen == ScreenWizard && a.wizardScreen != nil:
		_, cmd = a.wizardScreen.Update(msg)
	case a.screen == ScreenPhotoPicker && a.photoPicker != nil:
		_, cmd = a.photoPicker.Update(msg)
	}
	return a, cmd
}

// routeKey sends a key to the active screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenMenu:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		_, cmd = a.menu.Update(msg)
	case ScreenLogin:
		_, cmd = a.loginScreen.Update(msg)
	case ScreenDashboard:
		return a.updateDashboard(msg)
	case ScreenAnimals:
		_, cmd = a.animals.Update(msg)
	case ScreenDetail:
		return a.updateDetail(msg)
	case ScreenDonations:
		_, cmd = a.donations.Update(msg)
	case ScreenWizard:
		_, cmd = a.wizardScreen.Update(msg)
	case ScreenPhotoPicker:
		_, cmd = a.photoPicker.Update(msg)
	}
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadDashboard()
	case "b", "esc":
		return a.toMenu()
	}
	return a, nil
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadAnimal(a.detail.Animal().IDAnimal)
	case "u":
		if adminGuard.Decide(a.session) != access.Allow {
			a.setNotice("Uploading photos requires the Admin role", widgets.StatusWarning)
			return a, nil
		}
		return a.openPhotoPicker()
	case "b", "esc":
		a.detail = nil
		if a.animals != nil {
			a.screen = ScreenAnimals
			return a, nil
		}
		return a.toMenu()
	}
	return a, nil
}

// handleEntry opens a menu destination, honoring its guard decision
func (a *App) handleEntry(entry menu.Entry, decision access.Decision) (tea.Model, tea.Cmd) {
	switch entry {
	case menu.EntryQuit:
		return a, tea.Quit
	case menu.EntrySignIn:
		return a.openLogin(nil)
	case menu.EntrySignOut:
		a.session.Logout()
		a.setNotice("Signed out", widgets.StatusInfo)
		return a.toMenu()
	}

	switch decision {
	case access.Loading:
		a.setNotice("Session is still loading", widgets.StatusInfo)
		return a, nil
	case access.RedirectLogin:
		return a.openLogin(&entry)
	case access.RedirectDashboard:
		model, cmd := a.openDashboard()
		a.setNotice("That screen requires the Admin role", widgets.StatusWarning)
		return model, cmd
	}

	switch entry {
	case menu.EntryAnimals:
		a.animals = animals.New()
		a.animals.SetWidth(a.contentWidth())
		a.screen = ScreenAnimals
		return a, a.animals.Request()
	case menu.EntryDonations:
		a.donations = donations.New()
		a.donations.SetWidth(a.contentWidth())
		a.screen = ScreenDonations
		return a, a.donations.Request()
	case menu.EntryDashboard:
		return a.openDashboard()
	case menu.EntryAddAnimal:
		return a, a.loadCatalogs()
	}
	return a, nil
}

func (a *App) toMenu() (tea.Model, tea.Cmd) {
	a.menu = menu.New(a.session)
	a.screen = ScreenMenu
	a.animals, a.donations, a.dashboard, a.detail = nil, nil, nil, nil
	return a, nil
}

func (a *App) setNotice(text string, level widgets.StatusLevel) {
	a.notice, a.noticeLvl = text, level
}

// openLogin shows the login form; next is reopened after a successful sign-in
func (a *App) openLogin(next *menu.Entry) (tea.Model, tea.Cmd) {
	a.afterLogin = next
	email := ""
	if p := a.session.Snapshot().Profile; p != nil {
		email = p.Email
	}
	a.loginScreen = login.New(email)
	a.screen = ScreenLogin
	return a, a.loginScreen.Init()
}

func (a *App) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: a.session.Login(a.ctx, email, password)}
	}
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Debug("Sign-in failed", "error", msg.err)
		if a.loginScreen != nil {
			a.loginScreen.SetError(msg.err)
		}
		return a, nil
	}
	a.loginScreen = nil
	a.menu = menu.New(a.session)

	if next := a.afterLogin; next != nil {
		a.afterLogin = nil
		decision, _ := a.menu.Decision(*next)
		return a.handleEntry(*next, decision)
	}
	return a.openDashboard()
}

func (a *App) openDashboard() (tea.Model, tea.Cmd) {
	a.dashboard = dashboard.New(access.LandingFor(a.session), a.session.Snapshot().Profile, a.contentWidth(), a.contentHeight())
	a.screen = ScreenDashboard
	return a, a.loadDashboard()
}

func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		stats, err := dashboard.Load(a.ctx, a.api, a.cats)
		return dashboardLoadedMsg{stats: stats, err: err}
	}
}

func (a *App) loadAnimals(f client.AnimalFilter) tea.Cmd {
	return func() tea.Msg {
		page, err := a.api.ListAnimals(a.ctx, f)
		return animalsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadAnimal(id int) tea.Cmd {
	return func() tea.Msg {
		animal, err := a.api.GetAnimal(a.ctx, id)
		return animalLoadedMsg{animal: animal, err: err}
	}
}

func (a *App) loadDonations(f client.DonationFilter) tea.Cmd {
	return func() tea.Msg {
		page, err := a.api.ListDonationItems(a.ctx, f)
		return donationsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadCatalogs() tea.Cmd {
	return func() tea.Msg {
		cats, err := a.cats.LoadAll(a.ctx)
		return catalogsLoadedMsg{cats: cats, err: err}
	}
}

func (a *App) createAnimal(p client.AnimalUpsertPayload) tea.Cmd {
	return func() tea.Msg {
		animal, err := a.api.CreateAnimal(a.ctx, p)
		return animalCreatedMsg{animal: animal, err: err}
	}
}

func (a *App) handleAnimalCreated(msg animalCreatedMsg) (tea.Model, tea.Cmd) {
	a.wizardScreen = nil
	if msg.err != nil {
		if client.IsUnauthorized(msg.err) {
			entry := menu.EntryAddAnimal
			model, cmd := a.openLogin(&entry)
			a.setNotice("Session expired; sign in again", widgets.StatusWarning)
			return model, cmd
		}
		a.toMenu()
		a.setNotice("Could not register animal: "+msg.err.Error(), widgets.StatusCritical)
		return a, nil
	}
	a.detail = detail.New(msg.animal, a.api.Origin(), a.contentWidth())
	a.screen = ScreenDetail
	a.setNotice(fmt.Sprintf("Registered %s (#%d)", msg.animal.AnimalName, msg.animal.IDAnimal), widgets.StatusOK)
	return a, nil
}

func (a *App) openPhotoPicker() (tea.Model, tea.Cmd) {
	home, _ := os.UserHomeDir()
	dir := gallery.FindDir(home)
	var images []gallery.Image
	if dir != "" {
		found, err := gallery.Discover(dir)
		if err != nil {
			slog.Warn("Image discovery failed", "dir", dir, "error", err)
		}
		images = found
	}

	a.photoPicker = filepicker.New("Photo for "+a.detail.Animal().AnimalName, a.recentPhotos.Paths(), dir, images)
	a.photoPicker.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
	a.screen = ScreenPhotoPicker
	return a, nil
}

func (a *App) handlePhotoSelected(msg filepicker.FileSelectedMsg) (tea.Model, tea.Cmd) {
	if err := a.recentPhotos.Add(msg.Path); err != nil {
		slog.Warn("Could not remember photo", "path", msg.Path, "error", err)
	}
	id := a.detail.Animal().IDAnimal
	name := filepath.Base(msg.Path)
	return a, func() tea.Msg {
		_, err := a.api.UploadPhoto(a.ctx, id, name, bytes.NewReader(msg.Data))
		return photoUploadedMsg{animalID: id, err: err}
	}
}

func (a *App) handlePhotoUploaded(msg photoUploadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.photoPicker != nil {
			a.photoPicker.SetError("Upload failed: " + msg.err.Error())
		}
		return a, nil
	}
	a.photoPicker = nil
	a.screen = ScreenDetail
	a.setNotice("Photo uploaded", widgets.StatusOK)
	return a, a.loadAnimal(msg.animalID)
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenLogin:
		content = a.loginScreen.View()
	case ScreenDashboard:
		content = styles.ActivePanel.Width(a.contentWidth()).Render(a.dashboard.View())
	case ScreenAnimals:
		content = a.animals.View()
	case ScreenDetail:
		content = a.detail.View()
	case ScreenDonations:
		content = a.donations.View()
	case ScreenWizard:
		content = a.wizardScreen.View()
	case ScreenPhotoPicker:
		content = a.photoPicker.View()
	default:
		content = a.menu.View()
	}

	if a.notice != "" {
		content += "\n\n" + widgets.StatusText(a.notice, a.noticeLvl)
	}
	return a.wrapWithFrame(content)
}

// frameWidth is the header and footer width; one column short of the
// terminal so the right edge never wraps
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return max(a.frameWidth()-panelPadding, minTerminalWidth-panelPadding)
}

// contentHeight is the height left after the header, footer and panel border
func (a *App) contentHeight() int {
	return max(a.height-8, 10)
}

// renderHeader draws the top border with branding and the signed-in user
func (a *App) renderHeader() string {
	border := lipgloss.NewStyle().Foreground(styles.Muted)
	title := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), title.Render("UIO Paws"))

	snap := a.session.Snapshot()
	right := " " + widgets.RoleBadge("") + " "
	if snap.Authenticated() {
		who := "signed in"
		if snap.Profile != nil && snap.Profile.Email != "" {
			who = snap.Profile.Email
		}
		right = " " + lipgloss.NewStyle().Foreground(styles.Secondary).Render(who) + " " + widgets.RoleBadge(snap.Role) + " "
	}

	fill := max(0, a.frameWidth()-4-lipgloss.Width(left)-lipgloss.Width(right))
	return border.Render("╭─") + left + border.Render(strings.Repeat("─", fill)) + right + border.Render("─╮")
}

// shortcuts lists the key bindings for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin:
		return []string{"Tab Next", "Enter Submit", "Esc Cancel"}
	case ScreenDashboard:
		return []string{"r Refresh", "b Back", "q Quit"}
	case ScreenAnimals:
		if a.animals != nil && a.animals.Searching() {
			return []string{"Enter Search", "Esc Clear"}
		}
		return []string{"↑↓ Navigate", "Enter Open", "/ Search", "n/p Page", "b Back"}
	case ScreenDetail:
		if adminGuard.Decide(a.session) == access.Allow {
			return []string{"u Upload photo", "r Reload", "b Back", "q Quit"}
		}
		return []string{"r Reload", "b Back", "q Quit"}
	case ScreenDonations:
		if a.donations != nil && a.donations.Searching() {
			return []string{"Enter Search", "Esc Cancel"}
		}
		return []string{"c Category", "/ Search", "n/p Page", "b Back"}
	case ScreenWizard:
		return []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenPhotoPicker:
		return []string{"↑↓ Navigate", "Enter Select", "b Back"}
	}
	return nil
}

// renderFooter draws the bottom border with key bindings and freshness
func (a *App) renderFooter() string {
	border := lipgloss.NewStyle().Foreground(styles.Muted)

	parts := make([]string, 0, len(a.shortcuts()))
	for _, s := range a.shortcuts() {
		key, label, _ := strings.Cut(s, " ")
		parts = append(parts, styles.KeyStyle.Render(key)+" "+lipgloss.NewStyle().Foreground(styles.Muted).Render(label))
	}
	left := " " + strings.Join(parts, "  ") + " "

	right := ""
	switch a.screen {
	case ScreenDashboard, ScreenAnimals, ScreenDonations:
		if !a.lastUpdate.IsZero() {
			right = " " + lipgloss.NewStyle().Foreground(styles.Secondary).Render("Updated "+formatTimeSince(time.Since(a.lastUpdate))) + " "
		}
	}

	fill := max(0, a.frameWidth()-4-lipgloss.Width(left)-lipgloss.Width(right))
	return border.Render("╰─") + left + border.Render(strings.Repeat("─", fill)) + right + border.Render("─╯")
}

// formatTimeSince formats an elapsed duration in human-readable form
func formatTimeSince(d time.Duration) string {
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Catalogs.StartCleanup(ctx, catalogSweepInterval)

	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
