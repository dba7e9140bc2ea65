package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"DomainW/domain"
	"DomainW/tools"
)

type fakeWhoisClient struct {
	results map[string]tools.LookupResult
}

func (f *fakeWhoisClient) Query(ctx context.Context, name string) tools.LookupResult {
	if res, ok := f.results[name]; ok {
		return res
	}
	return tools.LookupResult{Status: false, Error: "no fixture"}
}

type fakeRDAP struct {
	record *tools.WhoisRecord
	err    error
	called bool
}

func (f *fakeRDAP) Query(ctx context.Context, name string) (*tools.WhoisRecord, error) {
	f.called = true
	return f.record, f.err
}

type fakeRepo struct {
	expiring []domain.DomainSource
	failures []domain.FailureRecord
	reports  []domain.LookupReport
}

func (f *fakeRepo) SaveExpiring(d []domain.DomainSource) error  { f.expiring = d; return nil }
func (f *fakeRepo) SaveFailures(d []domain.FailureRecord) error { f.failures = d; return nil }
func (f *fakeRepo) SaveReports(d []domain.LookupReport) error   { f.reports = d; return nil }

func successResult(expiry time.Time) tools.LookupResult {
	record := tools.NewWhoisRecord()
	record.Domain = "EXAMPLE.COM"
	record.ExpirationDate = expiry.UTC().Format(time.RFC3339)
	return tools.LookupResult{Status: true, Time: 0.1, Result: record}
}

func TestCheckExpiringViaWhois(t *testing.T) {
	soon := time.Now().Add(5 * 24 * time.Hour)
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{
		"example.com": successResult(soon),
	}}
	repo := &fakeRepo{}
	checker := &ExpiryCheckerService{Whois: whois, Repo: repo, AlertWithin: 30 * 24 * time.Hour}

	expiring, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "example.com", Source: "file:test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures = %+v", failures)
	}
	if len(expiring) != 1 || expiring[0].Expiry != soon.UTC().Format("2006-01-02") {
		t.Errorf("expiring = %+v", expiring)
	}
	if len(repo.reports) != 1 || repo.reports[0].Record.Domain != "EXAMPLE.COM" {
		t.Errorf("reports = %+v", repo.reports)
	}
}

func TestCheckFarExpiryNotReported(t *testing.T) {
	far := time.Now().Add(365 * 24 * time.Hour)
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{
		"example.com": successResult(far),
	}}
	checker := &ExpiryCheckerService{Whois: whois, AlertWithin: 30 * 24 * time.Hour}

	expiring, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "example.com", Source: "file:test"},
	})
	if err != nil || len(expiring) != 0 || len(failures) != 0 {
		t.Errorf("expiring = %+v, failures = %+v, err = %v", expiring, failures, err)
	}
}

func TestCheckPrefilledExpirySkipsLookup(t *testing.T) {
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{}}
	checker := &ExpiryCheckerService{Whois: whois, AlertWithin: 30 * 24 * time.Hour}

	soon := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	expiring, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "cert.example.com", Source: "acm:prod", Expiry: soon},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 0 || len(expiring) != 1 {
		t.Errorf("expiring = %+v, failures = %+v", expiring, failures)
	}
}

func TestCheckRDAPFallback(t *testing.T) {
	record := tools.NewWhoisRecord()
	record.ExpirationDate = time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	rdap := &fakeRDAP{record: record}
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{
		"example.com": {Status: false, Error: "refused"},
	}}
	checker := &ExpiryCheckerService{Whois: whois, RDAP: rdap, AlertWithin: 30 * 24 * time.Hour}

	expiring, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "example.com", Source: "file:test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rdap.called {
		t.Fatal("RDAP fallback not used")
	}
	if len(failures) != 0 || len(expiring) != 1 {
		t.Errorf("expiring = %+v, failures = %+v", expiring, failures)
	}
}

func TestCheckBothLookupsFail(t *testing.T) {
	rdap := &fakeRDAP{err: errors.New("rdap down")}
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{
		"example.com": {Status: false, Error: "refused"},
	}}
	checker := &ExpiryCheckerService{Whois: whois, RDAP: rdap, AlertWithin: 30 * 24 * time.Hour}

	_, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "example.com", Source: "file:test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 1 || !strings.Contains(failures[0].Reason, "refused") {
		t.Errorf("failures = %+v", failures)
	}
}

func TestCheckMissingExpiryField(t *testing.T) {
	record := tools.NewWhoisRecord()
	whois := &fakeWhoisClient{results: map[string]tools.LookupResult{
		"example.com": {Status: true, Result: record},
	}}
	checker := &ExpiryCheckerService{Whois: whois, AlertWithin: 30 * 24 * time.Hour}

	_, failures, err := checker.Check(context.Background(), []domain.DomainSource{
		{Domain: "example.com", Source: "file:test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 1 {
		t.Errorf("failures = %+v", failures)
	}
}

func TestCheckMissingWhoisClient(t *testing.T) {
	checker := &ExpiryCheckerService{}
	if _, _, err := checker.Check(context.Background(), nil); !errors.Is(err, ErrMissingDependencies) {
		t.Errorf("err = %v, want ErrMissingDependencies", err)
	}
}
