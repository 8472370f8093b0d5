package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/oisee/z80core/internal/machine"
)

func newWatchCmd() *cobra.Command {
	var romPath string
	var loadAddr uint16
	var startAddr uint16
	var batch int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a ROM image interactively, single-stepping a batch of instructions at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := machine.New(romPath, loadAddr, startAddr)
			if err != nil {
				return err
			}
			m := watchModel{sys: sys, batch: batch}
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&romPath, "rom", "", "path to a ROM image to load (required)")
	cmd.Flags().Uint16Var(&loadAddr, "load-addr", 0x0000, "address to map the ROM image at")
	cmd.Flags().Uint16Var(&startAddr, "start-addr", 0x0000, "initial PC")
	cmd.Flags().IntVar(&batch, "batch", 1, "instructions to execute per keypress")
	cmd.MarkFlagRequired("rom")

	return cmd
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	watchBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	watchHintStyle  = lipgloss.NewStyle().Faint(true)
)

// watchModel is a bubbletea model driving the register-dump TUI: space
// (or any key but q/ctrl-c) steps batch instructions, q quits.
type watchModel struct {
	sys         *machine.System
	batch       int
	totalCycles int
	lastCycles  int
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	default:
		m.lastCycles = m.sys.Run(m.batch)
		m.totalCycles += m.lastCycles
		return m, nil
	}
}

func (m watchModel) View() string {
	header := watchTitleStyle.Render("z80core watch")
	body := fmt.Sprintf(
		"%s\n\nlast step: %d instructions, %d T-states\ntotal: %d T-states\nHALT=%v IFF1=%v IFF2=%v IM=%d",
		m.sys.CPU.Reg.DumpString(), m.batch, m.lastCycles, m.totalCycles,
		m.sys.CPU.Halt, m.sys.CPU.IFF1, m.sys.CPU.IFF2, m.sys.CPU.Reg.IM,
	)
	hint := watchHintStyle.Render("any key: step · q: quit")
	return header + "\n" + watchBoxStyle.Render(body) + "\n" + hint
}
