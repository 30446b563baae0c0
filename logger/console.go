package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Console struct {
	Logger    *slog.Logger
	Output    io.Writer
	Colorized bool
}

func NewConsole(opts *Options) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Console{
		Logger:    NewRichLogger(opts),
		Output:    opts.Output,
		Colorized: opts.EnableColors && !opts.EnableJSON,
	}
}

func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

func (c *Console) decorate(prefix, color, format string, args []interface{}) string {
	msg := prefix + fmt.Sprintf(format, args...)
	if c.Colorized && color != "" {
		msg = color + msg + Reset
	}
	return msg
}

func (c *Console) Debug(format string, args ...interface{}) {
	c.Logger.Debug(c.decorate("· ", Cyan, format, args))
}

func (c *Console) Success(format string, args ...interface{}) {
	c.Logger.Info(c.decorate("✓ ", Green+Bold, format, args))
}

func (c *Console) Info(format string, args ...interface{}) {
	c.Logger.Info(c.decorate("ℹ ", Blue+Bold, format, args))
}

func (c *Console) Log(format string, args ...interface{}) {
	c.Logger.Info(c.decorate("", White, format, args))
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.Logger.Warn(c.decorate("⚠ ", Yellow+Bold, format, args))
}

func (c *Console) Error(format string, args ...interface{}) {
	c.Logger.Error(c.decorate("✖ ", Red+Bold, format, args))
}

func (c *Console) NewTable(headers []string) *Table {
	return NewTable(headers, c.Output)
}

func (c *Console) Box(title string, content string) {
	lines := strings.Split(content, "\n")
	maxWidth := len(title)

	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	maxWidth += 4

	fmt.Fprintln(c.Output, "┌"+"─"+title+"─"+strings.Repeat("─", maxWidth-len(title)-2)+"┐")

	for _, line := range lines {
		fmt.Fprintln(c.Output, "│ "+line+strings.Repeat(" ", maxWidth-len(line))+" │")
	}

	fmt.Fprintln(c.Output, "└"+strings.Repeat("─", maxWidth+2)+"┘")
}
