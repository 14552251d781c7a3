package models

import "time"

// User is the platform user on whose behalf consultations run. Only the
// fields this service reads are modelled; account management lives in the
// user service.
type User struct {
	ID                string    `bson:"id" json:"id"`
	Username          string    `bson:"username" json:"username"`
	Email             string    `bson:"email" json:"email,omitempty"`
	PhoneNumber       string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	PreferredLanguage string    `bson:"preferredLanguage,omitempty" json:"preferredLanguage,omitempty"`
	FCMToken          string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
