package locator

import (
	"testing"

	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/pkg/types"
)

func files(sinces ...int64) []logsource.LogFile {
	out := make([]logsource.LogFile, len(sinces))
	for i, s := range sinces {
		out[i] = logsource.LogFile{Since: s}
	}
	return out
}

func TestLocate_NoFiles(t *testing.T) {
	_, ok := Locate(nil, types.Period{Since: 100, Until: 200})
	if ok {
		t.Fatal("expected not-ok for empty file collection")
	}
}

func TestLocate_AllNewerThanWindow(t *testing.T) {
	_, ok := Locate(files(300, 400), types.Period{Since: 100, Until: 200})
	if ok {
		t.Fatal("expected not-ok when every file is newer than the window")
	}
}

func TestLocate_PicksNewestFileBeforeWindow(t *testing.T) {
	idx, ok := Locate(files(0, 50, 90, 150, 250), types.Period{Since: 100, Until: 500})
	if !ok {
		t.Fatal("expected ok")
	}
	if idx != 2 {
		t.Fatalf("idx: got %d, want 2 (since=90, the newest file < 100)", idx)
	}
}

func TestLocate_FallsBackToFirstFile(t *testing.T) {
	idx, ok := Locate(files(150, 200, 300), types.Period{Since: 100, Until: 500})
	if !ok {
		t.Fatal("expected ok")
	}
	if idx != 0 {
		t.Fatalf("idx: got %d, want 0 (no file older than the window start)", idx)
	}
}
