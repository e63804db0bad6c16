package entity

// User is an account of any role; the email is the login name.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(200);not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'patient'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// Can reports whether the user's role grants the capability. A nil user is anonymous.
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	return u.Role.Can(c)
}
