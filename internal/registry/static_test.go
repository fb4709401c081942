package registry

import "testing"

func TestStatic_FindHost(t *testing.T) {
	r := NewStatic()
	r.AddHost(StaticHost{HostName: "web01", Notification: "24x7", ServicePd: "24x7"})

	h, ok := r.FindHost("web01")
	if !ok {
		t.Fatal("FindHost: expected found")
	}
	if h.Name() != "web01" {
		t.Fatalf("Name: got %q", h.Name())
	}
	if h.Handle() != "host:web01" {
		t.Fatalf("Handle: got %q, want derived default", h.Handle())
	}

	if _, ok := r.FindHost("nonexistent"); ok {
		t.Fatal("FindHost: expected not found")
	}
}

func TestStatic_FindService(t *testing.T) {
	r := NewStatic()
	r.AddService(StaticService{Host: "web01", Desc: "mysql", Notification: "workhours"})

	svc, ok := r.FindService("web01", "mysql")
	if !ok {
		t.Fatal("FindService: expected found")
	}
	if svc.HostName() != "web01" || svc.Description() != "mysql" {
		t.Fatalf("identity: got %q/%q", svc.HostName(), svc.Description())
	}
	if svc.NotificationPeriod() != "workhours" {
		t.Fatalf("NotificationPeriod: got %q", svc.NotificationPeriod())
	}

	if _, ok := r.FindService("web01", "nonexistent"); ok {
		t.Fatal("FindService: expected not found")
	}
}

func TestStatic_ExplicitHandle(t *testing.T) {
	r := NewStatic()
	r.AddHost(StaticHost{HostName: "web01", HandleName: Handle("custom-handle")})

	h, _ := r.FindHost("web01")
	if h.Handle() != Handle("custom-handle") {
		t.Fatalf("Handle: got %q, want custom-handle", h.Handle())
	}
}
