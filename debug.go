package stage

import (
	"fmt"
	"io"
	"os"
)

// debugOut is where debug diagnostics are written.
var debugOut io.Writer = os.Stderr

// globalDebug mirrors the most recently set Overlay debug flag so that
// object operations (which lack an Overlay pointer) can check it cheaply.
// Only valid with a single Overlay.
var globalDebug bool

// debugf prints a "[stage]"-prefixed line when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[stage] "+format+"\n", args...)
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// object is used. Only called in debug mode.
func debugCheckDestroyed(o *StageObject, op string) {
	if o.destroyed {
		panic(fmt.Sprintf("stage debug: %s on destroyed object %q (ID %s)", op, o.Name, o.ID))
	}
}

// debugMaxObjects is the object count above which a warning is printed.
const debugMaxObjects = 1000

func debugCheckObjectCount(c *Collection) {
	if c.Len() > debugMaxObjects {
		debugf("warning: %d stage objects (threshold %d)", c.Len(), debugMaxObjects)
	}
}
