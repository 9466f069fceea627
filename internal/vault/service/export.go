package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportText ExportFormat = "text"
	ExportJSON ExportFormat = "json"
)

// ExportOrder selects the row order of an export.
type ExportOrder string

const (
	// OrderDisplay follows the operator's manual ordering.
	OrderDisplay ExportOrder = "display"
	// OrderNewest lists the most recently created accounts first.
	OrderNewest ExportOrder = "newest"
)

// ExportHeader is the first line of every text export.
const ExportHeader = "User ID|Password|Email|Email Password|2FA|DOB|Group|Tags|Created|Last Updated"

const (
	dobLayout       = "02/01/2006"
	timestampLayout = "02/01/2006, 15:04:05"
)

var ErrUnknownExportFormat = errors.New("unknown export format")

// ParseExportFormat accepts "text" (also the default for "") and "json".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExportText:
		return ExportText, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, s)
	}
}

// Exporter renders decoded accounts. Timestamps are printed in Location;
// dates of birth are calendar dates and always printed as stored.
type Exporter struct {
	Location *time.Location
}

func (e Exporter) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

// Encode renders accounts in format.
func (e Exporter) Encode(accounts []domain.Account, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportJSON:
		if accounts == nil {
			accounts = []domain.Account{}
		}
		return json.MarshalIndent(accounts, "", "  ")
	case ExportText, "":
		return []byte(e.Text(accounts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
}

// Text renders the pipe separated format: a header line followed by one
// line per account, joined by "\n" with no trailing newline.
func (e Exporter) Text(accounts []domain.Account) string {
	lines := make([]string, 0, len(accounts)+1)
	lines = append(lines, ExportHeader)
	for _, a := range accounts {
		lines = append(lines, e.Row(a))
	}
	return strings.Join(lines, "\n")
}

// Row renders one account. The 2FA column carries the stored secret so the
// export can be re-enrolled elsewhere.
func (e Exporter) Row(a domain.Account) string {
	var group string
	if a.Group != nil {
		group = a.Group.Name
	}

	return strings.Join([]string{
		a.Identifier,
		a.Password,
		deref(a.Email),
		deref(a.EmailPassword),
		deref(a.TwoFASecret),
		formatDOB(a.DOB),
		group,
		a.Tags,
		e.formatTimestamp(a.CreatedAt),
		e.formatTimestamp(a.UpdatedAt),
	}, "|")
}

func formatDOB(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dobLayout)
}

func (e Exporter) formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(e.location()).Format(timestampLayout)
}

// Export returns every account rendered in format.
func (s *AccountService) Export(ctx context.Context, format ExportFormat, order ExportOrder) ([]byte, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if order == OrderNewest {
		slices.SortStableFunc(accounts, func(a, b domain.Account) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return s.Exporter.Encode(accounts, format)
}

// ExportFileName is the attachment name for an export taken at now.
func ExportFileName(format ExportFormat, now time.Time) string {
	ext := "txt"
	if format == ExportJSON {
		ext = "json"
	}
	return fmt.Sprintf("accounts-%s.%s", now.Format("2006-01-02"), ext)
}
