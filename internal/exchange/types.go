package exchange

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts lists the wire layouts the admin endpoint is known to emit.
// Zoneless values are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// Timestamp tolerates the endpoint's inconsistent timestamp serialization.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses the first matching layout, treating null and the empty
// string as absent.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", s)
}

// Ptr returns the timestamp as *time.Time, nil when absent.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	tt := t.Time
	return &tt
}

// CloudMailbox is the raw shape of one hosted mailbox as returned by the
// Get-Mailbox cmdlet. Field names follow the wire properties.
type CloudMailbox struct {
	DisplayName          string    `json:"DisplayName"`
	PrimarySMTPAddress   string    `json:"PrimarySmtpAddress"`
	RecipientTypeDetails string    `json:"RecipientTypeDetails"`
	Database             string    `json:"Database"`
	ServerName           string    `json:"ServerName"`
	WhenCreated          Timestamp `json:"WhenCreated"`
	LastLogonTime        Timestamp `json:"LastLogonTime"`
}

// RemoteMailbox is the raw shape of one remote-mailbox stub as returned by
// the Get-RemoteMailbox cmdlet. The directory reports no database, server,
// or logon data for these.
type RemoteMailbox struct {
	DisplayName          string    `json:"DisplayName"`
	PrimarySMTPAddress   string    `json:"PrimarySmtpAddress"`
	RecipientTypeDetails string    `json:"RecipientTypeDetails"`
	WhenCreated          Timestamp `json:"WhenCreated"`
}
