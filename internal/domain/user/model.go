package user

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Profile struct {
	UID         string `firestore:"uid" json:"uid"`
	Email       string `firestore:"email,omitempty" json:"email,omitempty"`
	DisplayName string `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`

	// mirrors the admin custom claim for console queries
	Role     string `firestore:"role,omitempty" json:"role,omitempty"`
	FCMToken string `firestore:"fcmToken,omitempty" json:"-"`

	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Identity is what the verified ID token says about the caller.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
	Admin   bool
}

type Me struct {
	UID     string   `json:"uid"`
	Email   string   `json:"email"`
	Admin   bool     `json:"admin"`
	Profile *Profile `json:"profile"`
}

type UpdateProfileInput struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
	PhotoURL    string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

func (in *UpdateProfileInput) Trim() {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
}

type RegisterDeviceInput struct {
	Token string `json:"token"`
}
