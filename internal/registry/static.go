package registry

import "fmt"

// StaticHost is a fixed, in-memory Host.
type StaticHost struct {
	HostName   string
	HandleName Handle

	Notification string
	ServicePd    string
}

func (h StaticHost) Name() string              { return h.HostName }
func (h StaticHost) Handle() Handle            { return h.HandleName }
func (h StaticHost) NotificationPeriod() string { return h.Notification }
func (h StaticHost) ServicePeriod() string      { return h.ServicePd }

// StaticService is a fixed, in-memory Service.
type StaticService struct {
	Host     string
	Desc     string
	HandleID Handle

	Notification string
	ServicePd    string
}

func (s StaticService) HostName() string           { return s.Host }
func (s StaticService) Description() string        { return s.Desc }
func (s StaticService) Handle() Handle              { return s.HandleID }
func (s StaticService) NotificationPeriod() string { return s.Notification }
func (s StaticService) ServicePeriod() string      { return s.ServicePd }

// Static is an in-memory Registry, built up by Add calls. It's the
// reference implementation used by tests, cmd/historyreplay, and
// cmd/historyd's demo mode — a real deployment backs Registry with its
// live monitoring core instead.
type Static struct {
	hosts    map[string]StaticHost
	services map[string]StaticService
}

// NewStatic returns an empty Static registry.
func NewStatic() *Static {
	return &Static{
		hosts:    make(map[string]StaticHost),
		services: make(map[string]StaticService),
	}
}

// AddHost registers a host, issuing it a Handle derived from its name if
// HandleName is left empty.
func (s *Static) AddHost(h StaticHost) {
	if h.HandleName == "" {
		h.HandleName = Handle("host:" + h.HostName)
	}
	s.hosts[h.HostName] = h
}

// AddService registers a service, issuing it a Handle derived from its
// host/description pair if HandleID is left empty.
func (s *Static) AddService(svc StaticService) {
	if svc.HandleID == "" {
		svc.HandleID = Handle(fmt.Sprintf("service:%s/%s", svc.Host, svc.Desc))
	}
	s.services[serviceKey(svc.Host, svc.Desc)] = svc
}

func (s *Static) FindHost(name string) (Host, bool) {
	h, ok := s.hosts[name]
	return h, ok
}

func (s *Static) FindService(hostName, description string) (Service, bool) {
	svc, ok := s.services[serviceKey(hostName, description)]
	return svc, ok
}

func serviceKey(host, description string) string {
	return host + "\x00" + description
}
