// Package actor identifies the authenticated caller of a service operation.
package actor

// Actor is the user on whose behalf an operation runs
type Actor struct {
	UserID int64
	Admin  bool
}

// Owns reports whether the actor is the owner of an entity owned by userID
func (a Actor) Owns(userID int64) bool {
	return a.UserID != 0 && a.UserID == userID
}

// CanManage reports whether the actor owns the entity or is an administrator
func (a Actor) CanManage(userID int64) bool {
	return a.Admin || a.Owns(userID)
}
