package consts

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

const (
	MimePrefixImage = "image"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)
