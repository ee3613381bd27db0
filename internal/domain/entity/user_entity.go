package entity

// Roles a user can hold.
const (
	RoleEmployee = "employee"
	RoleClient   = "client"
)

// User is the identity record. Password holds a bcrypt hash and must never
// leave the service layer.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Company  string
	Role     string
	Comments []string
}

// ValidRole reports whether r is one of the accepted roles.
func ValidRole(r string) bool {
	return r == RoleEmployee || r == RoleClient
}

// UserPatch lists the fields an edit changes. A nil field is left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Company  *string
	Role     *string
	Comments *[]string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil &&
		p.Company == nil && p.Role == nil && p.Comments == nil
}

// Apply copies the set fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Comments != nil {
		u.Comments = append([]string{}, (*p.Comments)...)
	}
}
