// ABOUTME: Photo picker TUI component for choosing an image to upload
// ABOUTME: Offers recent photos, a typed path, and images found in a gallery directory

package filepicker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uiopaws/pawsctl/internal/tui/gallery"
	"github.com/uiopaws/pawsctl/internal/tui/icons"
	"github.com/uiopaws/pawsctl/internal/tui/styles"
)

// MaxImageBytes is the largest image the picker accepts.
const MaxImageBytes = 10 << 20

type state int

const (
	stateList state = iota
	stateInput
	stateGallery
)

// FileSelectedMsg is sent when an image has been read
type FileSelectedMsg struct {
	Path string
	Data []byte
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// FilePicker is the image selection component
type FilePicker struct {
	title     string
	recent    []string
	images    []gallery.Image
	galleryAt string
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
}

var errorStyle = lipgloss.NewStyle().Foreground(styles.Danger)

// New creates a picker. title names the upload target, e.g. "Photo for Luna".
func New(title string, recent []string, galleryDir string, images []gallery.Image) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Pictures/luna.jpg"
	ti.CharLimit = 512
	ti.Width = 60

	return &FilePicker{
		title:     title,
		recent:    recent,
		images:    images,
		galleryAt: galleryDir,
		textInput: ti,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
	case tea.KeyMsg:
		fp.err = ""
		switch fp.state {
		case stateInput:
			return fp.updateInput(msg)
		case stateGallery:
			return fp.updateGallery(msg)
		default:
			return fp.updateList(msg)
		}
	}
	return fp, nil
}

// move handles cursor keys for a list of n rows, reporting whether it did.
func (fp *FilePicker) move(key string, n int) bool {
	switch key {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
		return true
	case "down", "j":
		if fp.cursor < n-1 {
			fp.cursor++
		}
		return true
	}
	return false
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if fp.move(msg.String(), fp.listItemCount()) {
		return fp, nil
	}
	switch msg.String() {
	case "enter":
		return fp.selectListItem()
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.Blur()
		fp.textInput.SetValue("")
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter an image path"
			return fp, nil
		}
		return fp.loadImage(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

func (fp *FilePicker) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := len(fp.images)
	if fp.move(msg.String(), back+1) {
		return fp, nil
	}
	switch msg.String() {
	case "enter":
		if fp.cursor == back {
			fp.state, fp.cursor = stateList, 0
			return fp, nil
		}
		return fp.loadImage(fp.images[fp.cursor].Path)
	case "esc", "b":
		fp.state, fp.cursor = stateList, 0
	}
	return fp, nil
}

func (fp *FilePicker) listItemCount() int {
	n := len(fp.recent) + 1
	if len(fp.images) > 0 {
		n++
	}
	return n
}

func (fp *FilePicker) selectListItem() (tea.Model, tea.Cmd) {
	n := len(fp.recent)
	switch {
	case fp.cursor < n:
		return fp.loadImage(fp.recent[fp.cursor])
	case fp.cursor == n:
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	case len(fp.images) > 0 && fp.cursor == n+1:
		fp.state, fp.cursor = stateGallery, 0
	}
	return fp, nil
}

// loadImage validates and reads path, emitting FileSelectedMsg on success
func (fp *FilePicker) loadImage(path string) (tea.Model, tea.Cmd) {
	expanded := expandPath(path)

	if !gallery.IsImage(expanded) {
		fp.err = "Not an image: " + filepath.Base(path) + " (use " + strings.Join(gallery.Extensions, ", ") + ")"
		return fp, nil
	}

	info, err := os.Stat(expanded)
	switch {
	case os.IsNotExist(err):
		fp.err = "File not found: " + path
		return fp, nil
	case err != nil:
		fp.err = "Error reading file: " + err.Error()
		return fp, nil
	case info.Size() > MaxImageBytes:
		fp.err = fmt.Sprintf("Image is larger than %d MB", MaxImageBytes>>20)
		return fp, nil
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsPermission(err) {
			fp.err = "Cannot read file: permission denied"
		} else {
			fp.err = "Error reading file: " + err.Error()
		}
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expanded, Data: data}
	}
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SetError shows msg under the list, e.g. a failed upload
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	var b strings.Builder
	switch fp.state {
	case stateInput:
		b.WriteString(styles.Title.Render("Enter image path"))
		b.WriteString("\n")
		b.WriteString(fp.textInput.View())
		b.WriteString("\n")
	case stateGallery:
		b.WriteString(styles.Title.Render(icons.Photo.String() + " " + fp.galleryAt))
		b.WriteString("\n")
		for i, img := range fp.images {
			b.WriteString(fp.row(i, fmt.Sprintf("%s  %s", img.Name, humanSize(img.Size))))
		}
		b.WriteString(fp.row(len(fp.images), "[back]"))
	default:
		b.WriteString(styles.Title.Render(icons.Photo.String() + " " + fp.title))
		b.WriteString("\n")
		if len(fp.recent) > 0 {
			b.WriteString(styles.Subtitle.Render("Recent photos:"))
			b.WriteString("\n")
			for i, path := range fp.recent {
				b.WriteString(fp.row(i, fp.shorten(path)))
			}
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", 40)))
			b.WriteString("\n")
		}
		b.WriteString(fp.row(len(fp.recent), "Enter path..."))
		if len(fp.images) > 0 {
			b.WriteString(fp.row(len(fp.recent)+1, fmt.Sprintf("Browse %s (%d images)...", fp.galleryAt, len(fp.images))))
		}
	}

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + fp.err))
	}
	return b.String()
}

func (fp *FilePicker) row(i int, text string) string {
	style := styles.Normal
	if i == fp.cursor {
		style = styles.Selected
	}
	return styles.Cursor(i == fp.cursor) + style.Render(text) + "\n"
}

// shorten keeps the tail of long paths visible
func (fp *FilePicker) shorten(path string) string {
	limit := fp.width - 10
	r := []rune(path)
	if fp.width <= 20 || len(r) <= limit {
		return path
	}
	return "..." + string(r[len(r)-(limit-3):])
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.0f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
