package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// Role controls route-level authorization.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// User is a registered contestant or administrator. The contact number is the
// login key and is unique.
type User struct {
	bun.BaseModel `bun:"table:users" json:"-"`

	ID              string `bun:"id,pk" json:"id"`
	FullNameEnglish string `bun:"full_name_english" json:"fullNameEnglish"`
	FullNameBangla  string `bun:"full_name_bangla" json:"fullNameBangla"`
	Contact         string `bun:"contact" json:"contact"`
	ContactType     string `bun:"contact_type" json:"contactType,omitempty"`
	PasswordHash    string `bun:"password_hash" json:"-"`
	Role            Role   `bun:"role" json:"role"`

	// Demographics and schooling, optional.
	Gender             string `bun:"gender" json:"gender,omitempty"`
	Age                int    `bun:"age" json:"age,omitempty"`
	Grade              string `bun:"grade" json:"grade,omitempty"`
	InstitutionName    string `bun:"institution_name" json:"institutionName,omitempty"`
	InstitutionAddress string `bun:"institution_address" json:"institutionAddress,omitempty"`
	District           string `bun:"district" json:"district,omitempty"`
	Upazila            string `bun:"upazila" json:"upazila,omitempty"`
	Address            string `bun:"address" json:"address,omitempty"`
	WhatsappNumber     string `bun:"whatsapp_number" json:"whatsappNumber,omitempty"`

	IsActive  bool       `bun:"is_active" json:"isActive"`
	LastLogin *time.Time `bun:"last_login" json:"lastLogin,omitempty"`
	CreatedAt time.Time  `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bun:"updated_at" json:"updatedAt"`
}

// PublicProfile strips fields that never leave the server.
type PublicProfile struct {
	ID              string     `json:"id"`
	FullNameEnglish string     `json:"fullNameEnglish"`
	FullNameBangla  string     `json:"fullNameBangla"`
	Contact         string     `json:"contact"`
	Role            Role       `json:"role"`
	Grade           string     `json:"grade,omitempty"`
	InstitutionName string     `json:"institutionName,omitempty"`
	District        string     `json:"district,omitempty"`
	IsActive        bool       `json:"isActive"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
}

// Public returns the serializable view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		FullNameEnglish: u.FullNameEnglish,
		FullNameBangla:  u.FullNameBangla,
		Contact:         u.Contact,
		Role:            u.Role,
		Grade:           u.Grade,
		InstitutionName: u.InstitutionName,
		District:        u.District,
		IsActive:        u.IsActive,
		LastLogin:       u.LastLogin,
	}
}
