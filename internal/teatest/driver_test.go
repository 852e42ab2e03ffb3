package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// counter increments on "+" and quits on "q"; Init emits one increment.
type counter struct {
	n      int
	width  int
	quit   bool
	blocks chan struct{}
}

type incMsg struct{}

func (c counter) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return incMsg{} },
		func() tea.Msg { <-c.blocks; return incMsg{} },
	)
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case incMsg:
		c.n++
	case tea.QuitMsg:
		c.quit = true
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, func() tea.Msg { return incMsg{} }
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsImmediateAndSkipsBlocking(t *testing.T) {
	blocks := make(chan struct{})
	t.Cleanup(func() { close(blocks) })

	d := New(t, counter{blocks: blocks}, WithSize(80, 24))
	d.DrainInit()

	c := d.Model.(counter)
	assert.Equal(t, 1, c.n, "blocking Cmd is abandoned")
	assert.Equal(t, 80, c.width)
}

func TestDriver_KeysAndQuit(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('+')
	d.PressKey('+')
	assert.Equal(t, 2, d.Model.(counter).n)

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(counter).quit)

	d.PressKey('+')
	assert.Equal(t, 2, d.Model.(counter).n, "no input after quit")
}
