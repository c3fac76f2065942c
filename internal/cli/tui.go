package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// groups command
// =============================================================================

// groupsCommand creates the interactive group browser.
func (c *CLI) groupsCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "groups [graph]",
		Short: "Toggle group hulls interactively",
		Long: `Browse the groups of an asset graph and switch their hulls on and off.

Every toggle recomputes the regions immediately. On exit the visible regions
can be written as JSON with -o.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runGroups(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the visible regions as JSON on exit")
	flags.registerProjection(cmd)
	flags.registerHull(cmd)

	return cmd
}

func (c *CLI) runGroups(ctx context.Context, input string, opts pipeline.Options, output string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	res := runner.Project(ctx, g, opts)
	_, engine := runner.Hulls(ctx, res, opts)

	groups := g.Groups()
	if len(groups) == 0 {
		printInfo("%s has no groups", input)
		return nil
	}

	model := NewGroupsModel(engine, groups)
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("groups: %w", err)
	}

	if output == "" {
		return nil
	}
	regions := engine.Regions()
	data, err := json.MarshalIndent(regions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode regions: %w", err)
	}
	if err := writeFile(output, append(data, '\n')); err != nil {
		return err
	}
	printSuccess("Saved %d region(s)", len(regions))
	printFile(output)
	return nil
}

// =============================================================================
// GroupsModel - Interactive hull toggling
// =============================================================================

// updateLog records the engine updates seen by the model.
type updateLog struct {
	mu    sync.Mutex
	last  hull.Update
	count int
}

func (l *updateLog) record(u hull.Update) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = u
	l.count++
}

func (l *updateLog) snapshot() (hull.Update, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.count
}

// GroupsModel is the bubbletea model for toggling group hulls.
type GroupsModel struct {
	engine      *hull.Engine
	groups      []string
	cursor      int
	updates     *updateLog
	unsubscribe func()
}

// NewGroupsModel creates a model over engine. It subscribes to the engine
// until Close is called.
func NewGroupsModel(engine *hull.Engine, groups []string) GroupsModel {
	updates := &updateLog{}
	return GroupsModel{
		engine:      engine,
		groups:      groups,
		updates:     updates,
		unsubscribe: engine.Subscribe(updates.record),
	}
}

// Close detaches the model from its engine.
func (m GroupsModel) Close() {
	m.unsubscribe()
}

func (m GroupsModel) Init() tea.Cmd {
	return nil
}

func (m GroupsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.groups)-1 {
			m.cursor++
		}
	case " ", "enter":
		g := m.groups[m.cursor]
		m.engine.SetVisible(g, !m.engine.Visible(g))
	case "a":
		for _, g := range m.groups {
			m.engine.SetVisible(g, true)
		}
	case "n":
		for _, g := range m.groups {
			m.engine.SetVisible(g, false)
		}
	}
	return m, nil
}

func (m GroupsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Group Hulls"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  q quit"))
	b.WriteString("\n\n")

	byGroup := make(map[string]hull.Region)
	for _, r := range m.engine.Regions() {
		byGroup[r.GroupName] = r
	}

	rows := make([][]string, 0, len(m.groups))
	for i, g := range m.groups {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		state := "off"
		if m.engine.Visible(g) {
			state = "on"
		}
		members, size := "—", "—"
		if r, ok := byGroup[g]; ok {
			members = fmt.Sprintf("%d", r.MemberCount)
			size = fmt.Sprintf("%.0f × %.0f", r.Box.Width(), r.Box.Height())
		}
		rows = append(rows, []string{cursor, g, state, members, size})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Group", "Hull", "Members", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if row == m.cursor {
				return listSelectedStyle
			}
			if row < len(m.groups) && !m.engine.Visible(m.groups[row]) {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	last, count := m.updates.snapshot()
	if count > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d region(s) · %d update(s)", last.Trigger, len(last.Regions), count)))
	}
	return b.String()
}
