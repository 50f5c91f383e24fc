package authz

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

func IsAdmin(role string) bool {
	return role == RoleAdmin
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// CanModifyComment: the author edits/deletes own comments, admins any.
func CanModifyComment(role string, userID, authorID int64) bool {
	return IsAdmin(role) || userID == authorID
}
