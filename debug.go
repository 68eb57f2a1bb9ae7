package motive

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// globalDebug enables extra diagnostics (slot snapshots, threshold checks).
// Plain bool, no atomics — motive is single-threaded.
var globalDebug bool

// SetDebugMode toggles debug diagnostics for the whole package.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// warnf logs a non-fatal configuration or state warning. Warnings are the
// package's only logging: errors that can degrade gracefully do, and the
// degradation is what gets reported.
func warnf(format string, args ...any) {
	log.Printf("motive: "+format, args...)
}

// debugMaxSlotCount is the threshold above which a registration warning is
// emitted. A slot count this high usually means the host is leaking slots
// across remounts instead of restoring serialized state.
const debugMaxSlotCount = 500

func debugCheckSlotCount(n int) {
	if n > debugMaxSlotCount {
		_, _ = fmt.Fprintf(os.Stderr, "[motive] warning: %d slots registered (threshold %d)\n",
			n, debugMaxSlotCount)
	}
}

// DebugSnapshot returns a human-readable dump of every slot's state, sorted
// by slot id. Intended for debug consoles and test failures, not parsing.
func (s *Store) DebugSnapshot() string {
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		st := s.states[id]
		fmt.Fprintf(&b, "%s: progress=%.3f target=%.3f status=%s direction=%s element=%s\n",
			id, st.Progress, st.TargetProgress, st.Status, st.Direction, st.ElementID)
	}
	return b.String()
}
