package objectstate

import "testing"

func TestTable_ServiceBeforeHost(t *testing.T) {
	tab := NewTable()
	tab.Insert("svc:web01/mysql", &State{HostName: "web01", HostKey: "host:web01"})
	tab.Insert("host:web01", &State{IsHost: true, HostName: "web01"})

	host, _ := tab.Get("host:web01")
	svcs := tab.Services(host)
	if len(svcs) != 1 {
		t.Fatalf("Services: got %d, want 1", len(svcs))
	}
}

func TestTable_HostBeforeService(t *testing.T) {
	tab := NewTable()
	tab.Insert("host:web01", &State{IsHost: true, HostName: "web01"})
	svc := &State{HostName: "web01", HostKey: "host:web01"}
	tab.Insert("svc:web01/mysql", svc)

	host, _ := tab.Get("host:web01")
	svcs := tab.Services(host)
	if len(svcs) != 1 {
		t.Fatalf("Services: got %d, want 1", len(svcs))
	}

	gotHost, ok := tab.Host(svc)
	if !ok || gotHost != host {
		t.Fatal("Host: expected resolved back-link to host")
	}
}

func TestTable_NoDuplicateBackLinks(t *testing.T) {
	tab := NewTable()
	host := &State{IsHost: true, HostName: "web01"}
	tab.Insert("host:web01", host)
	tab.Insert("svc:web01/mysql", &State{HostName: "web01", HostKey: "host:web01"})
	host.addService("svc:web01/mysql") // redundant, should not duplicate

	if len(host.Services) != 1 {
		t.Fatalf("Services: got %d entries, want 1 (invariant 4)", len(host.Services))
	}
}
