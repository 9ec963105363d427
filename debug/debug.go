package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type debug struct {
	Events bool
	Refill bool
}

var d *debug

var eventColor = color.New(color.FgCyan)

func init() {
	d = &debug{}
	d.Events = boolEnv("JSTREAM_DEBUG_EVENTS")
	d.Refill = boolEnv("JSTREAM_DEBUG_REFILL")
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Events() bool {
	return d.Events
}
func Refill() bool {
	return d.Refill
}

// Eventf traces one delivered event to stderr.
func Eventf(desc string, line, column int) {
	eventColor.Fprintf(os.Stderr, "jstream: %s at %d:%d\n", desc, line, column)
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "jstream: "+format+"\n", args...)
}
