package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Deleting a company nulls the company
// reference of its users instead of cascading.
type UserModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	FirstName    string        `gorm:"type:varchar(150)"`
	LastName     string        `gorm:"type:varchar(150)"`
	Email        string        `gorm:"type:varchar(255);unique;not null"`
	Username     string        `gorm:"type:varchar(150)"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Groups       []*GroupModel `gorm:"many2many:user_groups;joinForeignKey:UserID;joinReferences:GroupID"`
	CompanyID    *uuid.UUID    `gorm:"type:uuid"`
	Company      *CompanyModel `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	IsActive     bool          `gorm:"not null;default:true"`
	LastLogin    *time.Time
	DateJoined   time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// GroupModel mirrors the 'groups' table.
type GroupModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name string    `gorm:"type:varchar(150);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (GroupModel) TableName() string {
	return "groups"
}
