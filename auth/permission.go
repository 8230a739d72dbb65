package auth

// Permission names one of the capabilities the API gateway gates a route
// behind.
type Permission string

const (
	// TaskSubmit permits POST /tasks/submit.
	TaskSubmit Permission = "task:submit"

	// TaskViewAll permits viewing and listing tasks belonging to any
	// user, not just the caller's own. Without it, GET /tasks/{id} and
	// GET /queue/tasks are scoped to the caller's own UserId.
	TaskViewAll Permission = "task:view_all"

	// TaskDeleteAll permits cancelling any user's task, not just the
	// caller's own.
	TaskDeleteAll Permission = "task:delete_all"

	// QueueView permits GET /queue/stats.
	QueueView Permission = "queue:view"

	// QueueManage permits the admin maintenance endpoints
	// (POST /admin/cleanup, POST /admin/reset-stale).
	QueueManage Permission = "queue:manage"
)

// User is the authenticated principal the auth collaborator resolves a
// bearer token into.
type User struct {
	Id          string
	Permissions map[Permission]bool
}

// Has reports whether u carries perm.
func (u *User) Has(perm Permission) bool {
	if u == nil {
		return false
	}
	return u.Permissions[perm]
}
