package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielokim/quotekit/internal/cli/formatter"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/intelligence"
)

// chatEntry is one line of the studio conversation log.
type chatEntry struct {
	fromUser bool
	text     string
}

// editDoneMsg carries the outcome of an async edit round-trip.
type editDoneMsg struct {
	quote  *domain.Quote
	source intelligence.Source
	opsN   int
	err    error
}

// quoteReloadedMsg carries the outcome of undo/reset/revise.
type quoteReloadedMsg struct {
	quote *domain.Quote
	label string
	err   error
}

type studioModel struct {
	app   *App
	quote *domain.Quote

	input   textinput.Model
	spin    spinner.Model
	busy    bool
	log     []chatEntry
	errText string
	width   int
}

func newStudioModel(app *App, q *domain.Quote) studioModel {
	input := textinput.New()
	input.Placeholder = "예: 6인승 리튬으로 변경"
	input.Focus()
	input.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = formatter.StylePurple

	return studioModel{
		app:   app,
		quote: q,
		input: input,
		spin:  spin,
	}
}

func (m studioModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.log = append(m.log, chatEntry{fromUser: true, text: text})
			m.busy = true
			m.errText = ""
			return m, tea.Batch(m.spin.Tick, m.runEdit(text))
		case "ctrl+z":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.spin.Tick, m.runUndo())
		case "ctrl+r":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.spin.Tick, m.runReset())
		}

	case editDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.quote = msg.quote
		reply := fmt.Sprintf("%d개 작업 적용", msg.opsN)
		if msg.source == intelligence.SourceKeyword {
			reply += " (keyword rules)"
		}
		if msg.opsN == 0 {
			reply = "수정할 내용을 찾지 못했습니다"
		}
		m.log = append(m.log, chatEntry{text: reply})
		return m, nil

	case quoteReloadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.quote = msg.quote
		m.log = append(m.log, chatEntry{text: msg.label})
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m studioModel) runEdit(text string) tea.Cmd {
	app, id := m.app, m.quote.ID
	return func() tea.Msg {
		ctx := context.Background()
		current, err := app.Quotes.Get(ctx, id)
		if err != nil {
			return editDoneMsg{err: err}
		}
		result, err := app.Normalizer.Normalize(ctx, text, current)
		if err != nil {
			return editDoneMsg{err: err}
		}
		if len(result.Ops) == 0 {
			return editDoneMsg{quote: current, source: result.Source}
		}
		patched, err := app.Quotes.ApplyPatch(ctx, id, result.Ops)
		if err != nil {
			return editDoneMsg{err: err}
		}
		return editDoneMsg{quote: patched, source: result.Source, opsN: len(result.Ops)}
	}
}

func (m studioModel) runUndo() tea.Cmd {
	app, id := m.app, m.quote.ID
	return func() tea.Msg {
		q, err := app.Quotes.Undo(context.Background(), id)
		return quoteReloadedMsg{quote: q, label: "마지막 수정 취소", err: err}
	}
}

func (m studioModel) runReset() tea.Cmd {
	app, id := m.app, m.quote.ID
	return func() tea.Msg {
		q, err := app.Quotes.Reset(context.Background(), id)
		return quoteReloadedMsg{quote: q, label: "기본 견적으로 복원", err: err}
	}
}

func (m studioModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.FormatQuoteDetail(m.quote))
	b.WriteString("\n")

	// Last few conversation lines.
	start := 0
	if len(m.log) > 6 {
		start = len(m.log) - 6
	}
	for _, entry := range m.log[start:] {
		if entry.fromUser {
			b.WriteString(formatter.StyleBlue.Render("> "+entry.text) + "\n")
		} else {
			b.WriteString(formatter.Dim("  "+entry.text) + "\n")
		}
	}
	if m.errText != "" {
		b.WriteString(formatter.StyleRed.Render("  "+m.errText) + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spin.View() + formatter.Dim(" 처리 중...") + "\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(formatter.Dim("enter 적용 · ctrl+z 취소 · ctrl+r 초기화 · esc 종료"))
	return b.String()
}
