package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/engine"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
)

// Nudge step sizes in mm.
const (
	nudgeSmall = 10
	nudgeLarge = 100
)

// newEditCmd creates the edit command, an interactive chain editor.
// Edits run through an engine session, so every keystroke gets an
// immediate resolve pass and the debounced sync autosaves behind the
// cursor.
func newEditCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an assembly chain interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			sess, err := engine.LoadSession(cmd.Context(), st, args[0], engine.Options{
				MinPanelLengthMM: cfg.Layout.MinPanelLengthMM,
				Debounce:         cfg.Layout.Debounce(),
				Store:            st,
				Logger:           loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}

			m := newEditModel(cmd.Context(), sess)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return err
			}

			// Flush any pending debounce before the store closes.
			if _, err := sess.Flush(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Saved %s", args[0])
			return nil
		},
	}
}

// =============================================================================
// editModel - Interactive chain editing
// =============================================================================

// editModel is the bubbletea model for the chain editor.
type editModel struct {
	ctx    context.Context
	sess   *engine.Session
	cursor int

	violations []resolve.Violation
	status     string
}

func newEditModel(ctx context.Context, sess *engine.Session) editModel {
	return editModel{ctx: ctx, sess: sess}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	a := m.sess.Assembly()

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(a.Nodes)-1 {
			m.cursor++
		}

	case "left", "h":
		m = m.nudge(a, -nudgeSmall)
	case "right", "l":
		m = m.nudge(a, nudgeSmall)
	case "H", "shift+left":
		m = m.nudge(a, -nudgeLarge)
	case "L", "shift+right":
		m = m.nudge(a, nudgeLarge)

	case "t":
		if n := m.currentNode(a); n != nil {
			m = m.report(m.sess.SetNodeType(m.ctx, n.ID, nextNodeType(n.Type)))
		}
	case "p":
		if p := m.outboundPanel(a); p != nil {
			m = m.report(m.sess.SetPanelType(m.ctx, p.ID, nextPanelType(p.Type)))
		}

	case "a":
		m = m.report(m.sess.AddNode(m.ctx, frame.NodeCorner290, frame.PanelWindow, 1000))
		m.cursor = len(m.sess.Assembly().Nodes) - 1
	case "d":
		if n := m.currentNode(a); n != nil && len(a.Nodes) > 1 {
			m = m.report(m.sess.DeleteNode(m.ctx, n.ID))
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case "x":
		m = m.report(m.sess.PrunePanels(m.ctx))
	}

	return m, nil
}

func (m editModel) View() string {
	a := m.sess.Assembly()
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + a.ID))
	b.WriteString(" " + StyleDim.Render(a.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ node  ←/→ nudge 10mm  H/L 100mm  t type  p panel  a add  d delete  x prune  q quit"))
	b.WriteString("\n\n")

	byFrom := make(map[string]frame.Panel, len(a.Panels))
	for _, p := range a.IntactPanels() {
		byFrom[p.FromNode] = p
	}

	for i := range a.Nodes {
		n := &a.Nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-9s %-11s offset %7.0f  width %4.0f",
			cursor, shortID(n.ID), n.Type, n.OffsetMM, n.WidthMM)
		if p, ok := byFrom[n.ID]; ok {
			line += StyleDim.Render(fmt.Sprintf("   %s %.0f mm →", p.Type, p.LengthMM))
		}

		if i == m.cursor {
			b.WriteString(StyleHighlight.Render(line))
		} else {
			b.WriteString(StyleValue.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  overall %.0f mm", a.OverallLengthMM())))
	if m.sess.Dirty() {
		b.WriteString(StyleDim.Render("  · unsaved"))
	}
	b.WriteString("\n")

	for _, v := range m.violations {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  ! %s %s: %s", v.Code, shortID(v.EntityID), v.Detail)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StyleDim.Render("  " + m.status))
		b.WriteString("\n")
	}

	return b.String()
}

// nudge moves the node under the cursor by delta mm.
func (m editModel) nudge(a *frame.Assembly, delta float64) editModel {
	n := m.currentNode(a)
	if n == nil {
		return m
	}
	return m.report(m.sess.MoveNode(m.ctx, n.ID, n.OffsetMM+delta))
}

// report folds a command outcome into the model's feedback lines.
func (m editModel) report(out engine.Outcome, err error) editModel {
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = ""
	m.violations = out.Violations
	return m
}

func (m editModel) currentNode(a *frame.Assembly) *frame.Node {
	if m.cursor < 0 || m.cursor >= len(a.Nodes) {
		return nil
	}
	return &a.Nodes[m.cursor]
}

// outboundPanel returns the intact panel leaving the cursor node.
func (m editModel) outboundPanel(a *frame.Assembly) *frame.Panel {
	n := m.currentNode(a)
	if n == nil {
		return nil
	}
	for _, p := range a.IntactPanels() {
		if p.FromNode == n.ID {
			return a.PanelByID(p.ID)
		}
	}
	return nil
}

// nextNodeType cycles through the node profile catalog.
func nextNodeType(t frame.NodeType) frame.NodeType {
	all := frame.NodeTypes()
	for i, v := range all {
		if v == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// nextPanelType cycles window → door → blanking.
func nextPanelType(t frame.PanelType) frame.PanelType {
	switch t {
	case frame.PanelWindow:
		return frame.PanelDoor
	case frame.PanelDoor:
		return frame.PanelBlanking
	default:
		return frame.PanelWindow
	}
}
