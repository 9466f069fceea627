package domain

import "time"

// Account is a decrypted credential record as handed to callers.
type Account struct {
	ID            int64      `json:"id"`
	Identifier    string     `json:"userId"`
	Password      string     `json:"password"`
	Email         *string    `json:"email"`
	EmailPassword *string    `json:"emailPassword"`
	RecoveryEmail *string    `json:"recoveryEmail"`
	TwoFASecret   *string    `json:"twoFASecret"`
	Tags          string     `json:"tags"`
	DOB           *time.Time `json:"dob"`
	Order         int        `json:"order"`
	GroupID       *int64     `json:"groupId"`
	Group         *GroupRef  `json:"group"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// StoredAccount is the at-rest shape of an Account. Every string field
// except Tags-when-empty holds field cipher output; absent optional
// fields are empty strings.
type StoredAccount struct {
	ID            int64
	Identifier    string
	Password      string
	Email         string
	EmailPassword string
	RecoveryEmail string
	TwoFASecret   string
	Tags          string
	DOB           *time.Time
	Order         int
	GroupID       *int64
	Group         *GroupRef
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AccountField names a single encrypted column of a stored account.
type AccountField string

const (
	FieldIdentifier    AccountField = "identifier"
	FieldPassword      AccountField = "password"
	FieldEmail         AccountField = "email"
	FieldEmailPassword AccountField = "email_password"
	FieldRecoveryEmail AccountField = "recovery_email"
	FieldTwoFASecret   AccountField = "two_fa_secret"
	FieldTags          AccountField = "tags"
)

// AccountFields lists every encrypted field in storage order.
var AccountFields = []AccountField{
	FieldIdentifier,
	FieldPassword,
	FieldEmail,
	FieldEmailPassword,
	FieldRecoveryEmail,
	FieldTwoFASecret,
	FieldTags,
}

// Valid reports whether f is one of the known encrypted fields.
func (f AccountField) Valid() bool {
	for _, known := range AccountFields {
		if f == known {
			return true
		}
	}
	return false
}
