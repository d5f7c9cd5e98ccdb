package shell

import (
	"io"

	"github.com/fatih/color"
)

// ConsoleReporter prints one line per fetched archive.
type ConsoleReporter struct {
	writer io.Writer
	label  *color.Color
}

func NewConsoleReporter(writer io.Writer) *ConsoleReporter {
	return &ConsoleReporter{writer: writer, label: color.New(color.FgCyan, color.Bold)}
}

func (this *ConsoleReporter) Downloading(address string) {
	_, _ = this.label.Fprint(this.writer, "Download")
	_, _ = io.WriteString(this.writer, " "+address+"\n")
}
