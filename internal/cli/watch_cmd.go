package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/readmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that updates as records change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Live == nil {
				return fmt.Errorf("live updates are not available")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			live := readmodel.NewDashboard(a.Live, readmodel.WithLogger(a.logger()))
			runErr := make(chan error, 1)
			go func() {
				err := live.Run(ctx)
				if err != nil {
					cancel()
				}
				runErr <- err
			}()

			p := tea.NewProgram(
				newWatchModel(live.Watch(ctx), a.Money),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			cancel()
			if rerr := <-runErr; rerr != nil {
				return rerr
			}
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running live dashboard: %w", err)
			}
			return nil
		},
	}
}

// viewMsg carries the next dashboard view; ok is false once the stream ends.
type viewMsg struct {
	view app.DashboardView
	ok   bool
}

type watchKeys struct {
	Quit key.Binding
}

func (k watchKeys) hints() string {
	return k.Quit.Help().Key + " " + k.Quit.Help().Desc
}

// watchModel renders the read model's views as they arrive.
type watchModel struct {
	updates <-chan app.DashboardView
	view    *app.DashboardView
	spinner spinner.Model
	keys    watchKeys
	money   formatter.Money
}

func newWatchModel(updates <-chan app.DashboardView, money formatter.Money) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return watchModel{
		updates: updates,
		spinner: s,
		keys: watchKeys{
			Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		money: money,
	}
}

func waitForView(updates <-chan app.DashboardView) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-updates
		return viewMsg{view: v, ok: ok}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForView(m.updates))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	case viewMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		v := msg.view
		m.view = &v
		return m, waitForView(m.updates)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.view == nil {
		return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), formatter.Dim("Connecting..."))
	}
	out := formatter.FormatDashboard(*m.view, m.money) + "\n"
	if m.view.Partial() {
		out += m.spinner.View() + " "
	}
	return out + formatter.FormatWatchFooter(*m.view, m.keys.hints()) + "\n"
}
