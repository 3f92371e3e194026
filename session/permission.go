package session

const (
	// PermissionAlerts allows a session to receive violation notifications.
	PermissionAlerts uint64 = 1 << iota
	// PermissionLogs allows a session to toggle whether it listens for debug information.
	PermissionLogs
	PermissionDebug
)

// AddPerm ...
func (s *Session) AddPerm(perm uint64) {
	for {
		old := s.perms.Load()
		if s.perms.CompareAndSwap(old, old|perm) {
			return
		}
	}
}

// RemovePerm ...
func (s *Session) RemovePerm(perm uint64) {
	for {
		old := s.perms.Load()
		if s.perms.CompareAndSwap(old, old&^perm) {
			return
		}
	}
}

// HasPerm returns true if the session holds any of the permission bits passed.
func (s *Session) HasPerm(perm uint64) bool {
	return s.perms.Load()&perm != 0
}
