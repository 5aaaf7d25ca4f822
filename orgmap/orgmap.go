// Package orgmap resolves raw governance identifiers (github handles,
// attendee names, client and pool names) to canonical organization names.
package orgmap

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var logger = logrus.StandardLogger().WithField("module", "orgmap")

// Domain selects which alias namespace a raw identifier belongs to
type Domain string

const (
	DomainGithub   Domain = "github"
	DomainAttendee Domain = "attendee"
	DomainClient   Domain = "client"
	DomainPool     Domain = "pool"
)

// Unknown is the bucket for identifiers without any affiliation data.
// Authorship and attendance are never dropped for a missing mapping.
const Unknown = "Unknown"

// AliasTable maps raw identifiers (matched case-insensitively) to
// canonical organization names, per domain.
type AliasTable map[Domain]map[string]string

var (
	efRE        = regexp.MustCompile(`(?i)^ef([/:]|\s+)`)
	consensysRE = regexp.MustCompile(`(?i)metamask|pegasys|pantheon`)
	gethRE      = regexp.MustCompile(`(?i)^geth$`)
	solidityRE  = regexp.MustCompile(`(?i)^solidity$`)
	tldRE       = regexp.MustCompile(`\.(com|org|io|net|edu|gov|xyz)$`)

	titleCaser = cases.Title(language.English)

	// freemail domains carry no affiliation signal
	genericMailDomains = map[string]bool{
		"gmail.com": true, "googlemail.com": true, "hotmail.com": true,
		"outlook.com": true, "yahoo.com": true, "protonmail.com": true,
		"proton.me": true, "icloud.com": true, "qq.com": true, "gmx.de": true,
	}
)

// Normalizer resolves identifiers against a fixed alias table. The table
// is read-only after construction, so a Normalizer is safe for concurrent
// use and independent instances can run with different mappings.
type Normalizer struct {
	aliases   map[Domain]map[string]string
	canonical map[string]bool
}

// New builds a Normalizer from the given alias table
func New(table AliasTable) *Normalizer {
	n := &Normalizer{
		aliases:   make(map[Domain]map[string]string),
		canonical: map[string]bool{Unknown: true},
	}
	for domain, entries := range table {
		m := make(map[string]string, len(entries))
		for raw, canonical := range entries {
			m[strings.ToLower(strings.TrimSpace(raw))] = canonical
			n.canonical[canonical] = true
		}
		n.aliases[domain] = m
	}
	return n
}

// LoadFile reads an alias table from a JSON file of the shape
// {"github": {"raw": "Canonical", ...}, "attendee": {...}, ...}.
// An empty path yields the built-in default table.
func LoadFile(path string) (*Normalizer, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading organization mapping %v", path)
	}
	var table AliasTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.Wrapf(err, "error decoding organization mapping %v", path)
	}
	logger.WithField("path", path).WithField("domains", len(table)).Info("loaded organization mapping")
	return New(table), nil
}

// Normalize maps a raw identifier to a canonical organization name.
// Already-canonical names pass through unchanged. Unmapped person
// identifiers (github, attendee) resolve to Unknown; unmapped client and
// pool names are kept as-is since they already name an entity.
func (n *Normalizer) Normalize(raw string, domain Domain) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unknown
	}
	if n.canonical[raw] {
		return raw
	}
	if canonical, ok := n.aliases[domain][strings.ToLower(raw)]; ok {
		return canonical
	}
	switch domain {
	case DomainClient, DomainPool:
		return raw
	}
	return Unknown
}

// CanonicalizeAffiliation normalizes a free-text affiliation annotation,
// e.g. "EF/Geth" or "MetaMask", as found next to attendee names or in
// author credits. Unrecognized annotations are kept verbatim: an explicit
// annotation is affiliation data, not a missing mapping.
func (n *Normalizer) CanonicalizeAffiliation(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unknown
	}
	if n.canonical[raw] {
		return raw
	}
	lower := strings.ToLower(raw)
	if canonical, ok := n.aliases[DomainAttendee][lower]; ok {
		return canonical
	}
	// affiliation annotations often name the client team, not the company
	if canonical, ok := n.aliases[DomainClient][lower]; ok {
		return canonical
	}
	switch {
	case lower == "ef" || efRE.MatchString(raw):
		return "Ethereum Foundation"
	case consensysRE.MatchString(raw):
		return "Consensys"
	case gethRE.MatchString(raw), solidityRE.MatchString(raw):
		return "Ethereum Foundation"
	}
	return raw
}

// ResolveAuthor resolves the organization of one author credit. Explicit
// annotations win, then the github handle, then the name, then the email
// domain. Anything else lands in Unknown.
func (n *Normalizer) ResolveAuthor(a types.EipAuthor) string {
	if a.Organization != "" {
		return n.CanonicalizeAffiliation(a.Organization)
	}
	if a.GithubHandle != "" {
		if org := n.Normalize(a.GithubHandle, DomainGithub); org != Unknown {
			return org
		}
	}
	if a.Name != "" {
		if org := n.Normalize(a.Name, DomainAttendee); org != Unknown {
			return org
		}
	}
	if org := n.InferFromEmail(a.Email); org != Unknown {
		return org
	}
	return Unknown
}

// ResolveAttendee resolves the organization of one meeting attendee from
// the optional affiliation annotation, falling back to the name mapping.
func (n *Normalizer) ResolveAttendee(name, affiliation string) string {
	if affiliation != "" {
		return n.CanonicalizeAffiliation(affiliation)
	}
	return n.Normalize(name, DomainAttendee)
}

// InferFromEmail derives a candidate organization from an email domain.
// Freemail providers yield Unknown.
func (n *Normalizer) InferFromEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return Unknown
	}
	domain := strings.ToLower(email[at+1:])
	if genericMailDomains[domain] {
		return Unknown
	}
	domain = strings.TrimPrefix(domain, "www.")
	domain = tldRE.ReplaceAllString(domain, "")
	if domain == "" {
		return Unknown
	}
	name := titleCaser.String(strings.ReplaceAll(domain, ".", " "))
	if canonical, ok := n.aliases[DomainAttendee][strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// Default returns a Normalizer over the built-in alias table
func Default() *Normalizer {
	return New(defaultTable)
}
