package registry

// Handle is the opaque identity handle the registry issues for a host or
// service. It is stable for the lifetime of a replay and is the engine's
// only concept of object identity (spec.md §3 "object identity handle").
type Handle string

// Host is the subset of a monitored host's live state the engine is
// allowed to read.
type Host interface {
	Name() string
	Handle() Handle
	NotificationPeriod() string
	ServicePeriod() string
}

// Service is the subset of a monitored service's live state the engine
// is allowed to read.
type Service interface {
	HostName() string
	Description() string
	Handle() Handle
	NotificationPeriod() string
	ServicePeriod() string
}

// Registry is the consumed monitored-object registry interface from
// spec.md §6: find_host, find_service, handleForStateHistory (folded
// into Host.Handle/Service.Handle), notificationPeriodName, and
// servicePeriodName. The engine only ever reads from it.
type Registry interface {
	FindHost(name string) (Host, bool)
	FindService(hostName, description string) (Service, bool)
}
