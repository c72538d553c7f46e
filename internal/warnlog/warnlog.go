// Package warnlog centralizes the "[component] message" stderr warning
// convention used throughout udgerua for non-fatal, log-and-continue conditions.
package warnlog

import (
	"fmt"
	"os"
)

// Printf writes a warning line to stderr prefixed with the component name.
func Printf(component, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]interface{}{component}, args...)...)
}
