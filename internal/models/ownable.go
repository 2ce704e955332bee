package models

// Ownable is implemented by records scoped to an owning user.
type Ownable interface {
	GetUserID() uint
}

// OwnedBy reports whether the record belongs to the given user.
func OwnedBy(o Ownable, userID uint) bool {
	return o.GetUserID() == userID
}
