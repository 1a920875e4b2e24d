package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleEmployee UserRole = "EMPLOYEE"
)

var userRoleLabels = map[UserRole][2]string{
	RoleAdmin:    {"Administrator", "Full system access and user management"},
	RoleManager:  {"Manager", "Inventory management and reporting access"},
	RoleEmployee: {"Employee", "Basic inventory operations"},
}

func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := userRoleLabels[r]; !ok {
		return "", ErrUnknownUserRole
	}
	return r, nil
}

func (r UserRole) DisplayName() string { return userRoleLabels[r][0] }
func (r UserRole) Description() string { return userRoleLabels[r][1] }

// User is an operator account. No access check consults it yet.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     Optional[string]
	Email        Optional[string]
	Role         UserRole
	LastLogin    Optional[time.Time]
	AuditInfo
}

func NewUser(username, passwordHash string, fullName Optional[string], role UserRole) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
		AuditInfo:    NewAuditInfo(time.Now().UTC()),
	}
}

func (u *User) HasEmail() bool {
	return u.Email.IsPresent()
}

func (u *User) DisplayName() string {
	return u.FullName.OrElse(u.Username)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager is true for managers and admins.
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

func (u *User) CanManageUsers() bool {
	return u.Role == RoleAdmin
}

func (u *User) CanManageInventory() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func (u *User) CanViewReports() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
