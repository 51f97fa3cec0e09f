package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/specmaru/backend/internal/domain"
	"github.com/specmaru/backend/internal/usecase"
)

const maxVisibleResults = 8

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	focusPaneStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("86")).Padding(0, 1)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("24"))
	warnStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type catalogLoadedMsg struct {
	catalog []domain.Product
}

type slotResolvedMsg struct {
	side       usecase.SlotSide
	generation uint64
	product    domain.Product
	found      bool
}

// Model is the two-slot comparison browser. It drives the comparison
// engine's state machine from terminal key events.
type Model struct {
	catalogService *usecase.CatalogService

	loading bool
	spinner spinner.Model

	engine *usecase.CompareEngine
	focus  usecase.SlotSide
	inputs [2]textinput.Model

	initialIDs [2]string
	status     string

	width int
}

// New creates a comparison browser, optionally pre-hydrating the slots from
// up to two product identifiers.
func New(catalogService *usecase.CatalogService, id1, id2 string) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	var inputs [2]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = "비교할 제품 검색"
		in.CharLimit = 60
		inputs[i] = in
	}
	inputs[usecase.SlotLeft].Focus()

	return Model{
		catalogService: catalogService,
		loading:        true,
		spinner:        spin,
		inputs:         inputs,
		initialIDs:     [2]string{id1, id2},
		width:          100,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalogCmd())
}

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{catalog: m.catalogService.LoadCatalog(context.Background())}
	}
}

func (m Model) resolveSlotCmd(side usecase.SlotSide, generation uint64, id string) tea.Cmd {
	return func() tea.Msg {
		product, err := m.catalogService.ResolveByID(context.Background(), id)
		return slotResolvedMsg{
			side:       side,
			generation: generation,
			product:    product,
			found:      err == nil,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		m.engine = usecase.NewCompareEngine(msg.catalog)
		var cmds []tea.Cmd
		for side, id := range map[usecase.SlotSide]string{
			usecase.SlotLeft:  m.initialIDs[0],
			usecase.SlotRight: m.initialIDs[1],
		} {
			if id == "" {
				continue
			}
			gen := m.engine.BeginHydration(side)
			cmds = append(cmds, m.resolveSlotCmd(side, gen, id))
		}
		return m, tea.Batch(cmds...)

	case slotResolvedMsg:
		if m.engine != nil {
			// Stale generations are dropped inside the engine.
			m.engine.ApplyHydration(msg.side, msg.generation, msg.product, msg.found)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading || m.engine == nil {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	m.status = ""
	slot := m.engine.Slot(m.focus)

	switch msg.String() {
	case "tab":
		m.setFocus(m.focus.Other())
		return m, nil

	case "up":
		m.engine.HighlightPrev(m.focus)
		return m, nil

	case "down":
		m.engine.HighlightNext(m.focus)
		return m, nil

	case "enter":
		if slot.Filled {
			return m, nil
		}
		if err := m.engine.CommitHighlighted(m.focus); err != nil {
			m.status = commitStatus(err)
		} else {
			m.inputs[m.focus].Reset()
		}
		return m, nil

	case "-":
		if slot.Filled {
			m.engine.Clear(m.focus)
			m.inputs[m.focus].Reset()
			m.inputs[m.focus].Focus()
			return m, nil
		}

	case "q", "esc":
		if slot.Filled {
			return m, tea.Quit
		}
	}

	if slot.Filled {
		return m, nil
	}

	// Remaining keys edit the focused slot's search query.
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if err := m.engine.SetQuery(m.focus, m.inputs[m.focus].Value()); err != nil {
		m.status = commitStatus(err)
	}
	return m, cmd
}

func (m *Model) setFocus(side usecase.SlotSide) {
	m.focus = side
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if !m.engine.Slot(side).Filled {
		m.inputs[side].Focus()
	}
}

func commitStatus(err error) string {
	switch err {
	case domain.ErrCategoryMismatch:
		return "비교하려는 제품은 동일한 종류여야 합니다."
	case domain.ErrNoSelection:
		return "결과를 먼저 선택하세요."
	default:
		return err.Error()
	}
}

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s 카탈로그 불러오는 중...\n", m.spinner.View())
	}
	if m.engine == nil {
		return "\n  카탈로그를 불러오지 못했습니다.\n"
	}

	paneWidth := m.width/2 - 4
	if paneWidth < 24 {
		paneWidth = 24
	}

	left := m.renderSlot(usecase.SlotLeft, paneWidth)
	right := m.renderSlot(usecase.SlotRight, paneWidth)

	var b strings.Builder
	b.WriteString(titleStyle.Render("스펙 비교") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderDiff(paneWidth))
	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status))
	}
	b.WriteString("\n" + hintStyle.Render("tab: 칸 이동 · ↑/↓: 결과 탐색 · enter: 선택 · -: 선택 해제 · ctrl+c: 종료"))
	return b.String()
}

func (m Model) renderSlot(side usecase.SlotSide, width int) string {
	slot := m.engine.Slot(side)
	style := paneStyle
	if side == m.focus {
		style = focusPaneStyle
	}

	var b strings.Builder
	if slot.Filled {
		b.WriteString(keyStyle.Render(slot.Product.Name) + "\n")
		b.WriteString(mutedStyle.Render(string(slot.Product.Category)))
		if link := slot.Product.BuyLink; link != "" {
			b.WriteString("\n" + mutedStyle.Render(link))
		}
	} else {
		b.WriteString(m.inputs[side].View())
		for i, p := range slot.Results {
			if i >= maxVisibleResults {
				b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("… %d개 더", len(slot.Results)-maxVisibleResults)))
				break
			}
			line := fmt.Sprintf("%s (%s)", p.Name, p.Category)
			if i == slot.Highlight {
				line = highlightStyle.Render(line)
			}
			b.WriteString("\n" + line)
		}
		if slot.Query != "" && len(slot.Results) == 0 {
			b.WriteString("\n" + mutedStyle.Render("검색 결과가 없습니다."))
		}
	}

	return style.Width(width).Render(b.String())
}

func (m Model) renderDiff(columnWidth int) string {
	rows := m.engine.DiffRows()
	if len(rows) == 0 {
		return mutedStyle.Render("비교할 스펙이 없습니다.")
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(keyStyle.Render(row.Key) + "\n")
		left := strings.Join(row.Left.Lines, " / ")
		right := strings.Join(row.Right.Lines, " / ")
		b.WriteString(fmt.Sprintf("  %-*s │ %s\n", columnWidth, left, right))
	}
	return b.String()
}
