package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/greeddj/mailbox-report-go/internal/exchange"
)

func ts(value string) exchange.Timestamp {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return exchange.Timestamp{Time: parsed}
}

func TestNormalizeSingleCloudRecord(t *testing.T) {
	cloud := []exchange.CloudMailbox{
		{
			DisplayName:          "Alice",
			PrimarySMTPAddress:   "alice@x.com",
			RecipientTypeDetails: "UserMailbox",
			Database:             "DB01",
		},
	}

	records, summary := Normalize(cloud, nil)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Location != LocationOnline {
		t.Errorf("expected LocationOnline, got %v", r.Location)
	}
	if r.Database != "DB01" {
		t.Errorf("expected database DB01, got %q", r.Database)
	}
	if r.LastLogonAt != nil {
		t.Errorf("expected nil last logon, got %v", r.LastLogonAt)
	}
	if summary.Total != 1 {
		t.Errorf("expected total 1, got %d", summary.Total)
	}
	if !reflect.DeepEqual(summary.Counts, map[string]int{"Exchange Online": 1}) {
		t.Errorf("unexpected summary counts: %v", summary.Counts)
	}
}

func TestNormalizeDatabaseDefault(t *testing.T) {
	records, _ := Normalize([]exchange.CloudMailbox{{DisplayName: "Bob", Database: ""}}, nil)
	if records[0].Database != "N/A" {
		t.Errorf("expected N/A for empty database, got %q", records[0].Database)
	}
}

func TestNormalizeRemoteRecords(t *testing.T) {
	remote := []exchange.RemoteMailbox{
		{
			DisplayName:          "Carol",
			PrimarySMTPAddress:   "carol@x.com",
			RecipientTypeDetails: "RemoteUserMailbox",
			WhenCreated:          ts("2021-03-14T09:00:00Z"),
		},
	}

	records, summary := Normalize(nil, remote)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Location != LocationOnPremises {
		t.Errorf("expected LocationOnPremises, got %v", r.Location)
	}
	if r.Database != "On-Premises" || r.ServerName != "On-Premises" {
		t.Errorf("expected On-Premises sentinels, got database %q server %q", r.Database, r.ServerName)
	}
	if r.LastLogonAt != nil {
		t.Errorf("remote records must never carry a last logon, got %v", r.LastLogonAt)
	}
	if r.CreatedAt == nil {
		t.Error("expected created timestamp to be carried over")
	}
	if summary.Counts["On-Premises"] != 1 {
		t.Errorf("unexpected summary counts: %v", summary.Counts)
	}
}

func TestNormalizeNoRecordDropped(t *testing.T) {
	cloud := []exchange.CloudMailbox{
		{DisplayName: "A", PrimarySMTPAddress: "a@x.com"},
		{DisplayName: "B", PrimarySMTPAddress: "b@x.com"},
	}
	remote := []exchange.RemoteMailbox{
		{DisplayName: "C", PrimarySMTPAddress: "c@x.com"},
	}

	records, summary := Normalize(cloud, remote)

	if len(records) != len(cloud)+len(remote) {
		t.Fatalf("expected %d records, got %d", len(cloud)+len(remote), len(records))
	}

	sum := 0
	for _, count := range summary.Counts {
		sum += count
	}
	if sum != summary.Total || summary.Total != len(records) {
		t.Errorf("summary counts %v (sum %d) disagree with total %d and length %d",
			summary.Counts, sum, summary.Total, len(records))
	}
}

func TestNormalizeNoDeduplication(t *testing.T) {
	// The same address in both sources stays visible as two rows.
	cloud := []exchange.CloudMailbox{
		{DisplayName: "Dana", PrimarySMTPAddress: "dana@x.com"},
	}
	remote := []exchange.RemoteMailbox{
		{DisplayName: "Dana", PrimarySMTPAddress: "dana@x.com"},
	}

	records, summary := Normalize(cloud, remote)

	if len(records) != 2 || summary.Total != 2 {
		t.Fatalf("expected both records to survive, got %d records total %d", len(records), summary.Total)
	}
	if records[0].Location == records[1].Location {
		t.Error("expected one online and one on-premises record")
	}
}

func TestNormalizeEmptyInputs(t *testing.T) {
	records, summary := Normalize(nil, nil)

	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if summary.Total != 0 {
		t.Errorf("expected total 0, got %d", summary.Total)
	}
	if len(summary.Counts) != 0 {
		t.Errorf("expected no zero-count entries, got %v", summary.Counts)
	}
}

func TestNormalizeIsPure(t *testing.T) {
	cloud := []exchange.CloudMailbox{
		{DisplayName: "A", PrimarySMTPAddress: "a@x.com", Database: "DB02", WhenCreated: ts("2020-01-01T00:00:00Z")},
	}
	remote := []exchange.RemoteMailbox{
		{DisplayName: "B", PrimarySMTPAddress: "b@y.com"},
	}

	records1, summary1 := Normalize(cloud, remote)
	records2, summary2 := Normalize(cloud, remote)

	if !reflect.DeepEqual(records1, records2) {
		t.Error("identical inputs produced different record sets")
	}
	if !reflect.DeepEqual(summary1, summary2) {
		t.Error("identical inputs produced different summaries")
	}
}

func TestLocationLabels(t *testing.T) {
	tests := []struct {
		location Location
		label    string
		class    string
	}{
		{LocationOnline, "Exchange Online", "online"},
		{LocationOnPremises, "On-Premises", "onprem"},
		{LocationUnknown, "Unknown", "unknown"},
		{Location(99), "Unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := tt.location.Label(); got != tt.label {
			t.Errorf("Label() = %q; want %q", got, tt.label)
		}
		if got := tt.location.CSSClass(); got != tt.class {
			t.Errorf("CSSClass() = %q; want %q", got, tt.class)
		}
	}
}

func TestSummaryLabelsSorted(t *testing.T) {
	summary := Summary{Counts: map[string]int{"Unknown": 1, "Exchange Online": 2, "On-Premises": 3}}
	want := []string{"Exchange Online", "On-Premises", "Unknown"}
	if got := summary.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v; want %v", got, want)
	}
}
