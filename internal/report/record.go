// Package report holds the normalized mailbox model and turns it into the
// final HTML document.
package report

import (
	"sort"
	"time"
)

// Location classifies where a mailbox's message store lives.
type Location int

const (
	// LocationUnknown is the defensive default for records neither mapping rule claims.
	LocationUnknown Location = iota
	// LocationOnline marks mailboxes hosted in Exchange Online.
	LocationOnline
	// LocationOnPremises marks directory stubs for mailboxes on a local Exchange server.
	LocationOnPremises
)

// Label returns the display label used in the summary and the Location column.
func (l Location) Label() string {
	switch l {
	case LocationOnline:
		return "Exchange Online"
	case LocationOnPremises:
		return "On-Premises"
	default:
		return "Unknown"
	}
}

// CSSClass returns the row class used by the report's filter script.
func (l Location) CSSClass() string {
	switch l {
	case LocationOnline:
		return "online"
	case LocationOnPremises:
		return "onprem"
	default:
		return "unknown"
	}
}

// MailboxRecord is the single normalized shape both raw record kinds map onto.
type MailboxRecord struct {
	DisplayName    string     // Human-readable identity.
	PrimaryAddress string     // Primary SMTP address; display key, not unique.
	TypeDetail     string     // Recipient type detail, verbatim from the origin system.
	Location       Location   // Hosting location classification, never left unset.
	Database       string     // Backing database descriptor or sentinel.
	ServerName     string     // Backing server descriptor or sentinel.
	CreatedAt      *time.Time // Creation timestamp if known.
	LastLogonAt    *time.Time // Last logon if known; always nil for on-premises stubs.
}

// Summary holds per-location counts for the labels actually present, plus the
// grand total. Entries are materialized in lexicographic label order.
type Summary struct {
	Counts map[string]int // Location label -> record count; no zero-count entries.
	Total  int            // Always equals the merged collection length.
}

// Labels returns the summary's labels in lexicographic order.
func (s Summary) Labels() []string {
	labels := make([]string, 0, len(s.Counts))
	for label := range s.Counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
