package report

import (
	"github.com/greeddj/mailbox-report-go/internal/exchange"
)

const (
	// noDatabase is rendered when a hosted mailbox reports no database.
	noDatabase = "N/A"
	// onPremSentinel replaces database and server for remote stubs, since the
	// directory carries no meaningful value for either.
	onPremSentinel = "On-Premises"
)

// Normalize maps both raw record shapes onto the common MailboxRecord schema,
// concatenates them (hosted first, then remote) and computes per-location
// counts. It is pure: no clock, no randomness, no external calls. Records are
// never dropped, so len(result) == len(cloud) + len(remote).
//
// The same address appearing in both sources produces two records. That
// mirrors the upstream directory's own view of a hybrid tenant and is
// deliberately left visible rather than deduplicated.
func Normalize(cloud []exchange.CloudMailbox, remote []exchange.RemoteMailbox) ([]MailboxRecord, Summary) {
	records := make([]MailboxRecord, 0, len(cloud)+len(remote))

	for _, m := range cloud {
		records = append(records, cloudToRecord(m))
	}
	for _, m := range remote {
		records = append(records, remoteToRecord(m))
	}

	summary := Summary{Counts: make(map[string]int), Total: len(records)}
	for _, r := range records {
		summary.Counts[r.Location.Label()]++
	}

	return records, summary
}

// cloudToRecord maps one hosted mailbox onto the common schema.
func cloudToRecord(m exchange.CloudMailbox) MailboxRecord {
	database := m.Database
	if database == "" {
		database = noDatabase
	}

	return MailboxRecord{
		DisplayName:    m.DisplayName,
		PrimaryAddress: m.PrimarySMTPAddress,
		TypeDetail:     m.RecipientTypeDetails,
		Location:       LocationOnline,
		Database:       database,
		ServerName:     m.ServerName,
		CreatedAt:      m.WhenCreated.Ptr(),
		LastLogonAt:    m.LastLogonTime.Ptr(),
	}
}

// remoteToRecord maps one remote-mailbox stub onto the common schema. The
// origin system cannot report last logon for non-hosted mailboxes, so the
// field stays nil regardless of input.
func remoteToRecord(m exchange.RemoteMailbox) MailboxRecord {
	return MailboxRecord{
		DisplayName:    m.DisplayName,
		PrimaryAddress: m.PrimarySMTPAddress,
		TypeDetail:     m.RecipientTypeDetails,
		Location:       LocationOnPremises,
		Database:       onPremSentinel,
		ServerName:     onPremSentinel,
		CreatedAt:      m.WhenCreated.Ptr(),
	}
}
