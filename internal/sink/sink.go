package sink

import "github.com/watchkeeper/history/pkg/types"

// Emitter receives closed intervals from the replay. Emit returns false
// to request the replay abort; a false result latches an abort flag the
// Replayer checks once per log entry (spec.md §5).
type Emitter interface {
	Emit(types.Interval) bool
}

// Authorizer decides whether a given (host, service) pair is visible to
// the requesting user (spec.md §6 is_authorized_for_object). serviceAuthOnly
// restricts the check to service-level permissions even for a host-level
// interval, mirroring the source interface's boolean parameter.
type Authorizer interface {
	Authorized(hostName, serviceDescription string, serviceAuthOnly bool) bool
}

// AllowAll is an Authorizer that authorizes everything — the default for
// cmd/historyreplay and tests where no per-user authorization model
// exists.
type AllowAll struct{}

func (AllowAll) Authorized(_, _ string, _ bool) bool { return true }
