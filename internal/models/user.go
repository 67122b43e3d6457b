package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the set of user roles known to the access policy.
type Role string

const (
	RoleAdmin         Role = "Admin"
	RoleSupervisor    Role = "Supervisor"
	RoleTechnician    Role = "Technician"
	RoleFieldOperator Role = "FieldOperator"
	RoleAuditor       Role = "Auditor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTechnician, RoleFieldOperator, RoleAuditor:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"` // User-friendly unique ID, e.g. "USR-001"
	UserName  string             `bson:"userName" json:"userName"`
	Role      Role               `bson:"role" json:"role"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
