package panes

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/termdesk/internal/apps"
	"github.com/1broseidon/termdesk/internal/geom"
)

// Calculator operators.
const (
	OpAdd = "+"
	OpSub = "−"
	OpMul = "×"
	OpDiv = "÷"
)

var calcGrid = [5][4]string{
	{"C", "C", "C", OpDiv},
	{"7", "8", "9", OpMul},
	{"4", "5", "6", OpSub},
	{"1", "2", "3", OpAdd},
	{"0", "0", ".", "="},
}

// calcHeader is the display line plus a blank line above the keypad.
const calcHeader = 2

// Calculator is a four-function calculator. Operators chain left to right
// with no precedence.
type Calculator struct {
	display string
	prev    float64
	hasPrev bool
	op      string
	waiting bool
	size    geom.Size
}

func NewCalculator() *Calculator {
	return &Calculator{display: "0"}
}

func (c *Calculator) Kind() apps.Kind { return apps.Calculator }
func (c *Calculator) SetSize(s geom.Size) { c.size = s }
func (c *Calculator) Focus() {}
func (c *Calculator) Blur() {}
func (c *Calculator) Display() string { return c.display }

// Digit appends a digit or the decimal point.
func (c *Calculator) Digit(d string) {
	if d == "." {
		if c.waiting {
			c.display = "0."
			c.waiting = false
			return
		}
		if !strings.Contains(c.display, ".") {
			c.display += "."
		}
		return
	}
	if c.waiting {
		c.display = d
		c.waiting = false
		return
	}
	if c.display == "0" {
		c.display = d
		return
	}
	c.display += d
}

// Op applies any pending operator and starts a new one.
func (c *Calculator) Op(op string) {
	if !c.hasPrev {
		c.prev = c.current()
		c.hasPrev = true
	} else if c.op != "" && !c.waiting {
		r := c.calculate()
		c.display = formatNumber(r)
		c.prev = r
	}
	c.op = op
	c.waiting = true
}

// Equal evaluates the pending operator.
func (c *Calculator) Equal() {
	if c.op == "" {
		return
	}
	r := c.calculate()
	c.display = formatNumber(r)
	c.hasPrev = false
	c.op = ""
	c.waiting = true
}

// Clear resets everything.
func (c *Calculator) Clear() {
	*c = Calculator{display: "0", size: c.size}
}

func (c *Calculator) current() float64 {
	v, err := strconv.ParseFloat(c.display, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (c *Calculator) calculate() float64 {
	cur := c.current()
	if !c.hasPrev || c.op == "" {
		return cur
	}
	switch c.op {
	case OpAdd:
		return c.prev + cur
	case OpSub:
		return c.prev - cur
	case OpMul:
		return c.prev * cur
	case OpDiv:
		return c.prev / cur
	default:
		return cur
	}
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'e', -1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Press handles a keypad label.
func (c *Calculator) Press(label string) {
	switch label {
	case "C":
		c.Clear()
	case "=":
		c.Equal()
	case OpAdd, OpSub, OpMul, OpDiv:
		c.Op(label)
	default:
		c.Digit(label)
	}
}

func (c *Calculator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
			c.Digit(k)
		case "+":
			c.Op(OpAdd)
		case "-":
			c.Op(OpSub)
		case "*", "x":
			c.Op(OpMul)
		case "/":
			c.Op(OpDiv)
		case "=", "enter":
			c.Equal()
		case "c", "esc", "delete":
			c.Clear()
		}
	case Mouse:
		if msg.Press() {
			if label, ok := c.keyAt(msg.Point); ok {
				c.Press(label)
			}
		}
	}
	return nil
}

func (c *Calculator) keyAt(p geom.Point) (string, bool) {
	w, h := c.size.Width, c.size.Height-calcHeader
	if w < 4 || h < 5 || p.Y < calcHeader || p.X < 0 {
		return "", false
	}
	col := p.X * 4 / w
	row := (p.Y - calcHeader) * 5 / h
	if col > 3 || row > 4 {
		return "", false
	}
	return calcGrid[row][col], true
}

var (
	calcDisplayStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right)
	calcKeyStyle     = lipgloss.NewStyle().Align(lipgloss.Center, lipgloss.Center)
	calcOpStyle      = calcKeyStyle.Foreground(lipgloss.Color("33"))
	calcEqualStyle   = calcKeyStyle.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33"))
)

func (c *Calculator) View() string {
	w := max(c.size.Width, 4)
	h := max(c.size.Height-calcHeader, 5)

	lines := []string{calcDisplayStyle.Width(w).Render(c.display), ""}
	for row := 0; row < 5; row++ {
		top := row * h / 5
		rh := (row+1)*h/5 - top
		var cells []string
		for col := 0; col < 4; {
			label := calcGrid[row][col]
			span := 1
			for col+span < 4 && calcGrid[row][col+span] == label {
				span++
			}
			left := col * w / 4
			cw := (col+span)*w/4 - left
			style := calcKeyStyle
			switch label {
			case OpAdd, OpSub, OpMul, OpDiv:
				style = calcOpStyle
			case "=":
				style = calcEqualStyle
			}
			cells = append(cells, style.Width(cw).Height(rh).Render(label))
			col += span
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
