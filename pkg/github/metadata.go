// Package github exposes a read-only snapshot of hosting-platform
// repository metadata. Fetching the metadata is left to the caller;
// this package only decodes and queries it.
package github

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/tidwall/gjson"
)

// ErrMalformedSnapshot is returned when a metadata snapshot cannot be decoded.
var ErrMalformedSnapshot = errors.New("malformed metadata snapshot")

// Metadata is the view of platform metadata that checks consult.
type Metadata interface {
	// CodeOfConductURL returns the community-health code of conduct URL, or "".
	CodeOfConductURL() string

	// SecurityPolicyURL returns the community-health security policy URL, or "".
	SecurityPolicyURL() string

	// HasStatusCheck returns true if any required status check on the
	// default branch protection matches re.
	HasStatusCheck(re *regexp.Regexp) bool
}

// Snapshot is a decoded metadata snapshot. It implements Metadata.
type Snapshot struct {
	CodeOfConduct  string   `json:"code_of_conduct_url,omitempty"`
	SecurityPolicy string   `json:"security_policy_url,omitempty"`
	StatusChecks   []string `json:"status_checks,omitempty"`
}

func (s *Snapshot) CodeOfConductURL() string  { return s.CodeOfConduct }
func (s *Snapshot) SecurityPolicyURL() string { return s.SecurityPolicy }

func (s *Snapshot) HasStatusCheck(re *regexp.Regexp) bool {
	for _, name := range s.StatusChecks {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Decode parses a snapshot in the shape of the platform's GraphQL
// repository object. Both the bare object and the full
// {"data":{"repository":{...}}} response are accepted.
func Decode(data []byte) (*Snapshot, error) {
	raw := string(data)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedSnapshot)
	}

	repo := gjson.Parse(raw)
	if wrapped := repo.Get("data.repository"); wrapped.Exists() {
		repo = wrapped
	}
	if !repo.IsObject() {
		return nil, fmt.Errorf("%w: repository is not an object", ErrMalformedSnapshot)
	}

	s := &Snapshot{
		CodeOfConduct:  repo.Get("codeOfConduct.url").String(),
		SecurityPolicy: repo.Get("securityPolicyUrl").String(),
	}

	// Protection rules expose contexts either as a flat list or as
	// requiredStatusChecks[].context depending on the API version.
	rule := repo.Get("defaultBranchRef.branchProtectionRule")
	for _, ctx := range rule.Get("requiredStatusCheckContexts").Array() {
		s.StatusChecks = append(s.StatusChecks, ctx.String())
	}
	for _, ctx := range rule.Get("requiredStatusChecks.#.context").Array() {
		s.StatusChecks = append(s.StatusChecks, ctx.String())
	}

	return s, nil
}

// Load reads and decodes a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: snapshot path from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata snapshot: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
