package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the interactive text interface for a Debugger, narrowed from
// the teacher's tui.go: the toy machine has no source file or call
// stack to display, so the Source/Stack panels are replaced by a
// single Disassembly view over the 256-word memory, and Memory gets
// the fixed 16x16 grid the 256-word address space actually needs.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout *tview.Flex

	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	DisassemblyView *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField
}

// NewTUI builds a TUI driving dbg. The caller still owns dbg.Machine's
// I/O wiring; NewTUI additionally routes dbg.Machine.Out to the
// output pane so the `0xF1`-`0xF9` output specials render there
// instead of to a terminal stream.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		Debugger: dbg,
		App:      tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	dbg.Machine.Out = t.OutputView

	return t
}

// NewTUIWithScreen builds a TUI against an explicit tcell.Screen,
// letting tests drive it with a tcell.SimulationScreen instead of a
// real terminal.
func NewTUIWithScreen(dbg *Debugger, screen tcell.Screen) *TUI {
	t := &TUI{
		Debugger: dbg,
		App:      tview.NewApplication().SetScreen(screen),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	dbg.Machine.Out = t.OutputView

	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 6, 0, false).
		AddItem(t.MemoryView, 0, 2, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		cmd, _ = t.Debugger.History.Last()
	} else {
		t.Debugger.History.Add(cmd)
	}
	t.CommandInput.SetText("")
	t.executeCommand(cmd)
}

// executeCommand runs one debugger command and refreshes every panel.
// Supported commands: step, continue, break <hex>, delete <hex>,
// reset, quit.
func (t *TUI) executeCommand(cmd string) {
	fields := strings.Fields(strings.TrimSpace(cmd))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "step", "s":
		if !t.Debugger.Step() {
			t.writeOutput("[yellow]halted[white]\n")
		}
	case "continue", "c":
		if t.Debugger.Continue() {
			t.writeOutput(fmt.Sprintf("[yellow]stopped at breakpoint 0x%02x[white]\n", t.Debugger.Machine.PC))
		} else {
			t.writeOutput("[yellow]halted[white]\n")
		}
	case "break", "b":
		if addr, ok := parseHexArg(fields); ok {
			t.Debugger.Breakpoints.Add(addr)
		}
	case "delete", "d":
		if addr, ok := parseHexArg(fields); ok {
			t.Debugger.Breakpoints.Remove(addr)
		}
	case "reset":
		t.Debugger.Machine.Clear()
	case "quit", "q":
		t.App.Stop()
		return
	default:
		t.writeOutput(fmt.Sprintf("[red]unknown command: %s[white]\n", fields[0]))
	}

	t.RefreshAll()
}

func parseHexArg(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "0x"), 16, 64)
	if err != nil {
		return 0, false
	}
	return int(v) & 0xFF, true
}

func (t *TUI) writeOutput(text string) {
	fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// RefreshAll repaints every panel from current machine/debugger state.
func (t *TUI) RefreshAll() {
	t.updateRegisterView()
	t.updateMemoryView()
	t.updateDisassemblyView()
	t.updateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) updateRegisterView() {
	t.RegisterView.Clear()
	var b strings.Builder
	for i, v := range t.Debugger.Machine.Registers {
		fmt.Fprintf(&b, "R%x=%04x ", i, v)
		if i%4 == 3 {
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "PC=%02x", t.Debugger.Machine.PC)
	fmt.Fprint(t.RegisterView, b.String())
}

func (t *TUI) updateMemoryView() {
	t.MemoryView.Clear()
	var b strings.Builder
	for row := 0; row < 16; row++ {
		fmt.Fprintf(&b, "%x_ ", row)
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&b, "%04x ", t.Debugger.Machine.Memory[row*16+col])
		}
		b.WriteString("\n")
	}
	fmt.Fprint(t.MemoryView, b.String())
}

func (t *TUI) updateDisassemblyView() {
	t.DisassemblyView.Clear()
	pc := int(t.Debugger.Machine.PC)
	start := pc - 8
	if start < 0 {
		start = 0
	}
	for _, line := range t.Debugger.Disassemble(start, 24) {
		fmt.Fprintln(t.DisassemblyView, line)
	}
}

func (t *TUI) updateBreakpointsView() {
	t.BreakpointsView.Clear()
	bps := t.Debugger.Breakpoints.List()
	if len(bps) == 0 {
		fmt.Fprint(t.BreakpointsView, "[gray]no breakpoints[white]")
		return
	}
	for _, bp := range bps {
		state := "enabled"
		if !bp.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(t.BreakpointsView, "#%d 0x%02x (%s, hit %d)\n", bp.ID, bp.Address, state, bp.HitCount)
	}
}

// Run starts the TUI's event loop, blocking until the user quits.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}
