package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleMitra      = "mitra"
	RoleMSME       = "msme"
	RoleFranchise  = "franchise"
	RoleCA         = "ca"
	RoleCompliance = "compliance"
	RoleInvestor   = "investor"
	RoleNBFC       = "nbfc"
	RoleGovt       = "govt"
)

const (
	KycPending  = "pending"
	KycApproved = "approved"
	KycRejected = "rejected"
)

type User struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:128" json:"name"`
	Email     string `gorm:"uniqueIndex;size:128" json:"email"`
	Password  string `gorm:"size:128" json:"-"`
	Role      string `gorm:"size:16;index" json:"role"`
	// Region is the district/state tenant the user belongs to. Immutable
	// after registration; franchise commission and govt reporting are
	// partitioned by it.
	Region    string    `gorm:"size:64;index" json:"region"`
	KycStatus string    `gorm:"size:16;default:pending" json:"kyc_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wallet *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}
