package auth

import "mediavault/pkg/models"

// Permission is a named capability granted per role.
type Permission string

const (
	PermissionUploadFiles  Permission = "upload_files"
	PermissionDeleteFiles  Permission = "delete_files"
	PermissionManageAlbums Permission = "manage_albums"
	PermissionViewFiles    Permission = "view_files"
)

// rolePermissions is the single source of truth for role capabilities.
// Permission decisions anywhere in the application must go through this
// table; never re-derive them with ad-hoc role comparisons.
var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin: {
		PermissionUploadFiles,
		PermissionDeleteFiles,
		PermissionManageAlbums,
		PermissionViewFiles,
	},
	models.RoleUser: {
		PermissionUploadFiles,
		PermissionManageAlbums,
		PermissionViewFiles,
	},
	models.RoleGuest: {
		PermissionViewFiles,
	},
}

// HasPermission reports whether the user's role grants the permission. A nil
// user (nobody logged in) never holds any permission.
func HasPermission(user *models.User, permission Permission) bool {
	if user == nil {
		return false
	}
	for _, p := range rolePermissions[user.Role] {
		if p == permission {
			return true
		}
	}
	return false
}

// PermissionsOf returns the permission set granted to the user, empty for a
// nil user.
func PermissionsOf(user *models.User) []Permission {
	if user == nil {
		return nil
	}
	return rolePermissions[user.Role]
}

// CanUpload reports whether the user may upload files.
func CanUpload(user *models.User) bool {
	return HasPermission(user, PermissionUploadFiles)
}

// CanDelete reports whether the user may delete files.
func CanDelete(user *models.User) bool {
	return HasPermission(user, PermissionDeleteFiles)
}

// CanManageAlbums reports whether the user may create and edit albums.
func CanManageAlbums(user *models.User) bool {
	return HasPermission(user, PermissionManageAlbums)
}
