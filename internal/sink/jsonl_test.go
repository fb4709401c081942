package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/watchkeeper/history/pkg/types"
)

func TestJSONL_Emit_WritesOneLinePerInterval(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONL(&buf)

	if !j.Emit(types.Interval{HostName: "h", ServiceDescription: "mysql", State: types.StateOK}) {
		t.Fatal("Emit returned false")
	}
	if !j.Emit(types.Interval{HostName: "h", ServiceDescription: "nginx", State: types.StateCritical}) {
		t.Fatal("Emit returned false")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var iv types.Interval
	if err := json.Unmarshal([]byte(lines[0]), &iv); err != nil {
		t.Fatalf("unmarshal line 0: %v", err)
	}
	if iv.ServiceDescription != "mysql" {
		t.Fatalf("line 0 service = %q, want mysql", iv.ServiceDescription)
	}
}
