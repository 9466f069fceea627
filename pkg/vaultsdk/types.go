package vaultsdk

import "time"

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"twoFactorCode,omitempty"`
}

// LoginResponse is returned on a successful login. The session itself is
// carried by the session-token cookie.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Redirect  string    `json:"redirect"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SuccessResponse acknowledges an operation with no other result.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TOTPSetupResponse carries a freshly generated login 2FA secret.
type TOTPSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
	QRCodeURL  string `json:"qrCodeUrl"`
}

// TOTPCodeRequest confirms or disables login 2FA.
type TOTPCodeRequest struct {
	Token string `json:"token"`
}

// Account is a decrypted credential record.
type Account struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"userId"`
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

// GroupRef is the group an account belongs to.
type GroupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AccountRequest is the body of account create and update. DOB is a
// calendar date, "2006-01-02".
type AccountRequest struct {
	UserID        string  `json:"userId"`
	Password      string  `json:"password"`
	Email         *string `json:"email,omitempty"`
	EmailPassword *string `json:"emailPassword,omitempty"`
	RecoveryEmail *string `json:"recoveryEmail,omitempty"`
	TwoFASecret   *string `json:"twoFASecret,omitempty"`
	Tags          string  `json:"tags,omitempty"`
	DOB           string  `json:"dob,omitempty"`
	GroupID       *int64  `json:"groupId,omitempty"`
}

// ReorderRequest lists account ids in their new display order.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// CodeResponse is the current TOTP code of an account.
type CodeResponse struct {
	Code      string    `json:"code"`
	Remaining int       `json:"remaining"`
	ExpiresAt time.Time `json:"expiresAt"`
	Valid     bool      `json:"valid"`
	Refreshed bool      `json:"refreshed,omitempty"`
}

// TagCandidate is an account carrying a searched tag.
type TagCandidate struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`
	Tags   string `json:"tags"`
}

// TagCandidatesResponse is returned by GET /v1/tags/accounts.
type TagCandidatesResponse struct {
	Count      int            `json:"count"`
	Candidates []TagCandidate `json:"candidates"`
}

// TagReplaceRequest renames a tag on every account.
type TagReplaceRequest struct {
	FromTag string `json:"fromTag"`
	ToTag   string `json:"toTag"`
}

// TagReplaceResponse reports a bulk tag rename.
type TagReplaceResponse struct {
	Matched int `json:"matched"`
	Updated int `json:"updated"`
}

// SetTagsRequest replaces the tags of one account.
type SetTagsRequest struct {
	Tags string `json:"tags"`
}

// GroupRequest creates or renames a group.
type GroupRequest struct {
	Name string `json:"name"`
}

// Group is an account group with its member count.
type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Order        int       `json:"order"`
	AccountCount int       `json:"accountCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Cipher   string `json:"cipher"`
}
