// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/pageflip/internal/application/usecase"
	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

const (
	rowDevice = iota
	rowQuadBuffer
	rowShowExtra
	rowCount
)

// OptionsModel edits the stored device and quad-buffer selection.
type OptionsModel struct {
	help help.Model
	keys optionsKeyMap

	devices []entity.OutputDevice
	device  int
	options *stereo.Options
	row     int

	saving bool
	done   bool
	saved  bool
	err    error

	ctx        context.Context
	settingsUC *usecase.ManageOutputSettingsUseCase
	theme      *styles.Theme
}

type optionsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Save key.Binding
	Quit key.Binding
}

func (k optionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Save, k.Quit}
}

func (k optionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Prev, k.Next}, {k.Save, k.Quit}}
}

func defaultOptionsKeyMap() optionsKeyMap {
	return optionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right", " "),
			key.WithHelp("→/l", "next"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OptionsModelConfig holds the inventory the editor chooses from.
type OptionsModelConfig struct {
	SettingsUC *usecase.ManageOutputSettingsUseCase
	Devices    []entity.OutputDevice
	ActiveID   string
	// Options carries the current values and the choices labelled by capability detection.
	Options *stereo.Options
}

// NewOptionsModel creates the interactive options editor.
func NewOptionsModel(ctx context.Context, theme *styles.Theme, cfg OptionsModelConfig) OptionsModel {
	m := OptionsModel{
		help:       help.New(),
		keys:       defaultOptionsKeyMap(),
		devices:    cfg.Devices,
		options:    cfg.Options,
		ctx:        ctx,
		settingsUC: cfg.SettingsUC,
		theme:      theme,
	}
	for i, d := range cfg.Devices {
		if d.DeviceID == cfg.ActiveID {
			m.device = i
		}
	}
	return m
}

type optionsSavedMsg struct {
	err error
}

// Init implements tea.Model.
func (m OptionsModel) Init() tea.Cmd {
	return nil
}

// Selection returns what would be saved.
func (m OptionsModel) Selection() usecase.Selection {
	sel := usecase.Selection{
		QuadBuffer: m.options.QuadBuffer.Value(),
		ShowExtra:  m.options.ShowExtra.Value(),
	}
	if len(m.devices) > 0 {
		sel.DeviceID = m.devices[m.device].DeviceID
	}
	return sel
}

// Saved reports whether the selection was stored.
func (m OptionsModel) Saved() bool { return m.saved }

// Err returns the save error, if any.
func (m OptionsModel) Err() error { return m.err }

// Update implements tea.Model.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case optionsSavedMsg:
		m.saving = false
		m.done = true
		m.err = msg.err
		m.saved = msg.err == nil
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		if m.saving {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m OptionsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row = (m.row + rowCount - 1) % rowCount
	case key.Matches(msg, m.keys.Down):
		m.row = (m.row + 1) % rowCount
	case key.Matches(msg, m.keys.Prev):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Next):
		m.cycle(1)
	case key.Matches(msg, m.keys.Save):
		m.saving = true
		return m, m.save(m.Selection())
	}
	return m, nil
}

func (m *OptionsModel) cycle(step int) {
	switch m.row {
	case rowDevice:
		if n := len(m.devices); n > 0 {
			m.device = (m.device + n + step) % n
		}
	case rowQuadBuffer:
		choices := m.options.QuadBuffer.Choices()
		if len(choices) == 0 {
			return
		}
		cur := 0
		for i, c := range choices {
			if c.Value == m.options.QuadBuffer.Value() {
				cur = i
			}
		}
		m.options.QuadBuffer.Set(choices[(cur+len(choices)+step)%len(choices)].Value)
	case rowShowExtra:
		// Turning extras off moves an emulated selection back to OpenGL.
		m.options.ShowExtra.Set(!m.options.ShowExtra.Value())
	}
}

func (m OptionsModel) save(sel usecase.Selection) tea.Cmd {
	return func() tea.Msg {
		err := m.settingsUC.SaveSelection(m.ctx, sel)
		if err != nil {
			logging.FromContext(m.ctx).Error().Err(err).Msg("failed to save output selection")
		}
		return optionsSavedMsg{err: err}
	}
}

// View implements tea.Model.
func (m OptionsModel) View() string {
	t := m.theme

	if m.saving {
		return t.Box.Render(t.Subtle.Render("Saving..."))
	}
	if m.done {
		status := t.SuccessStyle.Render(styles.IconCheck + " Selection saved")
		if m.err != nil {
			status = t.ErrorStyle.Render(styles.IconX + " " + m.err.Error())
		}
		return t.Box.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			status,
			"",
			t.Subtle.Render("Press any key to exit"),
		))
	}

	lines := []string{t.Title.Render("Output options"), ""}
	lines = append(lines, m.renderRow(rowDevice, "Device", m.deviceLabel()))
	lines = append(lines, m.renderRow(rowQuadBuffer, m.options.QuadBuffer.Name(),
		m.options.QuadBuffer.Label(m.options.QuadBuffer.Value())))
	lines = append(lines, m.renderRow(rowShowExtra, m.options.ShowExtra.Name(), onOff(m.options.ShowExtra.Value())))
	lines = append(lines, "", m.help.View(m.keys))
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m OptionsModel) deviceLabel() string {
	if len(m.devices) == 0 {
		return "none"
	}
	d := m.devices[m.device]
	return fmt.Sprintf("%s %s", d.Name, m.theme.SupportBadge(d.Support))
}

func (m OptionsModel) renderRow(row int, name, value string) string {
	t := m.theme
	label := fmt.Sprintf("%-20s", name)
	if row != m.row {
		return "  " + t.Subtle.Render(label) + " " + value
	}
	return strings.Join([]string{
		t.Highlight.Render(styles.IconCursor),
		t.Highlight.Render(label),
		"‹ " + value + " ›",
	}, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var _ tea.Model = (*OptionsModel)(nil)
