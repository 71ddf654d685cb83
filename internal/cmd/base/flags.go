package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// FlagSet wraps a flag.FlagSet to render its flags for command help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f and silences its own usage output.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.Usage = func() {}
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag list, or an empty string if there are no
// flags.
func (f *FlagSet) Help() string {
	var b strings.Builder
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	if b.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n" + b.String()
}
