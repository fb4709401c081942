package locator

import (
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/pkg/types"
)

// Locate implements WindowLocator (spec.md §4.2). files must be ordered
// by ascending Since. Returns the index of the file the Replayer should
// start materializing from, and ok=false when there is nothing to
// replay — no log files at all, or every file is newer than window.
func Locate(files []logsource.LogFile, window types.Period) (startIdx int, ok bool) {
	if len(files) == 0 {
		return 0, false
	}

	idx := len(files) - 1
	for idx > 0 && files[idx].Since >= window.Since {
		idx--
	}

	if files[idx].Since >= window.Until {
		return 0, false
	}

	// The selected file is always entered at its first entry (spec.md
	// §4.2 step 4): both branches of the original rule land here, so we
	// don't distinguish "newest" from "not newest" — positioning is
	// uniform once the file itself is chosen correctly.
	return idx, true
}
