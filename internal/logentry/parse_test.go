package logentry

import "testing"

func TestParse_ServiceAlert(t *testing.T) {
	e, ok := Parse("[150] SERVICE ALERT: myhost;mysql;2;HARD;3;Connection refused", 1)
	if !ok {
		t.Fatal("Parse: expected ok")
	}
	if e.Kind != KindAlertService {
		t.Fatalf("Kind: got %v, want alert_service", e.Kind)
	}
	if e.HostName != "myhost" || e.ServiceDescription != "mysql" {
		t.Fatalf("identity: got %q/%q", e.HostName, e.ServiceDescription)
	}
	if e.State != 2 {
		t.Fatalf("State: got %d, want 2", e.State)
	}
	if e.StateType != "HARD" {
		t.Fatalf("StateType: got %q", e.StateType)
	}
	if e.PluginOutput != "Connection refused" {
		t.Fatalf("PluginOutput: got %q", e.PluginOutput)
	}
}

func TestParse_TimeperiodTransition(t *testing.T) {
	e, ok := Parse("[300] TIMEPERIOD TRANSITION: workhours;1;0", 5)
	if !ok {
		t.Fatal("Parse: expected ok")
	}
	if e.Kind != KindTimeperiodTransition {
		t.Fatalf("Kind: got %v", e.Kind)
	}
	if e.Options != "workhours;1;0" {
		t.Fatalf("Options: got %q", e.Options)
	}
}

func TestParse_UnrecognizedPrefix(t *testing.T) {
	_, ok := Parse("[10] EXTERNAL COMMAND: SOME_COMMAND;arg", 1)
	if ok {
		t.Fatal("Parse: expected not-ok for out-of-class line")
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"no brackets at all",
		"[notanumber] HOST ALERT: h;1;HARD;3;x",
		"[10] missing colon payload",
	}
	for _, c := range cases {
		if _, ok := Parse(c, 1); ok {
			t.Errorf("Parse(%q): expected not-ok", c)
		}
	}
}

func TestKind_ClassAndInitial(t *testing.T) {
	if KindStateServiceInitial.Class() != ClassState {
		t.Error("state_service_initial should be class state")
	}
	if !KindStateServiceInitial.IsInitial() {
		t.Error("state_service_initial should be initial")
	}
	if KindAlertHost.Class() != ClassAlert {
		t.Error("alert_host should be class alert")
	}
	if KindCoreStarting.Class() != ClassProgram {
		t.Error("core_starting should be class program")
	}
}

func TestLogEntry_IsStarted(t *testing.T) {
	e := LogEntry{StateType: "STARTED"}
	if !e.IsStarted() {
		t.Error("expected STARTED to report started")
	}
	e.StateType = "STOPPED"
	if e.IsStarted() {
		t.Error("expected STOPPED to not report started")
	}
}
