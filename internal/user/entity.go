package user

import "errors"

// User is one authenticated profile. EncryptedAIKey holds the user's stored
// AI credential, AES-GCM encrypted at rest and never serialized to clients.
type User struct {
	ID             string `bson:"_id" json:"id"`
	Email          string `bson:"email" json:"email"`
	Name           string `bson:"name" json:"name"`
	Picture        string `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt      int64  `bson:"createdAt" json:"createdAt"`
	EncryptedAIKey string `bson:"encryptedAiKey,omitempty" json:"-"`
}

var ErrNotFound = errors.New("user not found")
