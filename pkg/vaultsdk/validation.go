package vaultsdk

import (
	"strings"
	"time"
)

const (
	requiredReason = "required"
	dateLayout     = "2006-01-02"
)

// Validate checks an account request. It returns a map of field names to
// reasons, or nil if the request is acceptable.
func (a AccountRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(a.UserID) == "" {
		errs["userId"] = requiredReason
	}
	if a.Password == "" {
		errs["password"] = requiredReason
	}
	if a.DOB != "" {
		if _, err := a.ParseDOB(); err != nil {
			errs["dob"] = "must be a date (YYYY-MM-DD)"
		}
	}
	if len(a.Tags) > 1024 {
		errs["tags"] = "too long (max 1024)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseDOB parses DOB, accepting a bare date or an RFC 3339 timestamp from
// which only the date is kept. An empty DOB yields nil.
func (a AccountRequest) ParseDOB() (*time.Time, error) {
	s := strings.TrimSpace(a.DOB)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return nil, err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &t, nil
}

// Validate checks a login request.
func (l LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(l.Username) == "" {
		errs["username"] = requiredReason
	}
	if l.Password == "" {
		errs["password"] = requiredReason
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
