package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`

	Username string `bson:"username" json:"username"`
	Name     string `bson:"name" json:"name"` // canonical full name, input to display-name transforms
	Avatar   string `bson:"avatar" json:"avatar"`
	Status   string `bson:"status" json:"status"` // available, busy, offline

	LastSeen int64 `bson:"lastSeen" json:"lastSeen"`
}

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)
