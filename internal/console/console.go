package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
)

var (
	styleTitle   = color.New(color.FgGreen, color.OpBold)
	styleSection = color.New(color.FgCyan)
	styleComment = color.New(color.FgYellow)
	styleMuted   = color.New(color.FgGray)
	styleError   = color.New(color.FgRed, color.OpBold)
	styleSuccess = color.New(color.FgWhite, color.BgGreen, color.OpBold)
	styleFailure = color.New(color.FgWhite, color.BgRed, color.OpBold)
	styleInfo    = color.New(color.FgBlack, color.BgCyan)
)

// Console writes formatted output to a writer and reads answers from a
// reader. It is safe for concurrent use.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	in      *bufio.Reader
	colored bool
}

// New creates a console. colored enables ANSI styling.
func New(out io.Writer, in io.Reader, colored bool) *Console {
	c := &Console{out: out, colored: colored}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

func (c *Console) paint(style color.Style, s string) string {
	if !c.colored {
		return s
	}
	return style.Sprint(s)
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// Title writes an underlined heading.
func (c *Console) Title(text string) {
	c.println("")
	c.println(c.paint(styleTitle, text))
	c.println(c.paint(styleTitle, strings.Repeat("=", len(text))))
	c.println("")
}

// Line writes plain text.
func (c *Console) Line(text string) {
	c.println(text)
}

// Comment writes secondary text.
func (c *Console) Comment(text string) {
	c.println(c.paint(styleComment, text))
}

// Error writes an error line.
func (c *Console) Error(text string) {
	c.println(c.paint(styleError, text))
}

// Item writes a name with an optional description, as used by listings.
func (c *Console) Item(name, description string) {
	if description == "" {
		c.println("  " + c.paint(styleSection, name))
		return
	}
	c.println(fmt.Sprintf("  %s  %s", c.paint(styleSection, name), c.paint(styleMuted, description)))
}

// Section implements session.Printer.
func (c *Console) Section(section, message string) {
	c.println(fmt.Sprintf("[%s] %s", c.paint(styleSection, section), message))
}

// BlockKind selects the style of a block.
type BlockKind int

const (
	BlockInfo BlockKind = iota
	BlockSuccess
	BlockFailure
)

// Block writes lines as a padded, full-width banner.
func (c *Console) Block(kind BlockKind, lines ...string) {
	style := styleInfo
	switch kind {
	case BlockSuccess:
		style = styleSuccess
	case BlockFailure:
		style = styleFailure
	}

	var flat []string
	for _, l := range lines {
		flat = append(flat, strings.Split(l, "\n")...)
	}
	lines = flat

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	pad := func(s string) string {
		return "  " + s + strings.Repeat(" ", width-len(s)) + "  "
	}

	c.println("")
	c.println(c.paint(style, pad("")))
	for _, l := range lines {
		c.println(c.paint(style, pad(l)))
	}
	c.println(c.paint(style, pad("")))
	c.println("")
}
