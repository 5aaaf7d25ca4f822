package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/types"
	"gopkg.in/yaml.v2"
)

var (
	frontmatterRE = regexp.MustCompile(`(?s)^\s*---\s*\n(.*?)\n---`)
	fileNumberRE  = regexp.MustCompile(`eip-(\d+)`)
	emailRE       = regexp.MustCompile(`<([^>]+)>`)
	handleRE      = regexp.MustCompile(`@([A-Za-z0-9-]+)`)
	annotationRE  = regexp.MustCompile(`\(([^)]+)\)`)
)

// eipHeader is the frontmatter block of a proposal document
type eipHeader struct {
	Eip     *uint64 `yaml:"eip"`
	Title   string  `yaml:"title"`
	Status  string  `yaml:"status"`
	Author  string  `yaml:"author"`
	Created string  `yaml:"created"`
}

// EipParser extracts proposal metadata and author credits
type EipParser struct {
	norm *orgmap.Normalizer
}

func NewEipParser(norm *orgmap.Normalizer) *EipParser {
	return &EipParser{norm: norm}
}

// ParseDocument parses one proposal document. The document must begin
// with a YAML frontmatter block carrying at least an eip number and an
// author field; the free-form body is ignored. Returns either the parsed
// metadata or a failure naming the missing field.
func (p *EipParser) ParseDocument(doc Document) (*types.EipMetadata, *types.ParseFailure) {
	m := frontmatterRE.FindStringSubmatch(doc.Content)
	if m == nil {
		return nil, &types.ParseFailure{Document: doc.Name, Field: "header", Reason: "no frontmatter block"}
	}

	var header eipHeader
	if err := yaml.Unmarshal([]byte(m[1]), &header); err != nil {
		return nil, &types.ParseFailure{Document: doc.Name, Field: "header", Reason: err.Error()}
	}

	number, ok := p.eipNumber(header, doc.Name)
	if !ok {
		return nil, &types.ParseFailure{Document: doc.Name, Field: "eip", Reason: "no eip number in header or filename"}
	}

	if strings.TrimSpace(header.Author) == "" {
		return nil, &types.ParseFailure{Document: doc.Name, Field: "author", Reason: "missing author field"}
	}

	meta := &types.EipMetadata{
		Number:  number,
		Title:   header.Title,
		Status:  header.Status,
		Created: header.Created,
	}
	for _, entry := range splitAuthorList(header.Author) {
		meta.Authors = append(meta.Authors, p.parseAuthorEntry(entry))
	}
	return meta, nil
}

func (p *EipParser) eipNumber(header eipHeader, name string) (uint64, bool) {
	if header.Eip != nil {
		return *header.Eip, true
	}
	if m := fileNumberRE.FindStringSubmatch(name); m != nil {
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseAuthorEntry parses one author credit. Supported shapes are
// "Name <email>", "Name (@handle)" and plain "Name", each optionally
// followed by an "(Organization)" annotation. Partial matches are
// accepted; whatever remains after stripping email, handle and
// annotation is the name.
func (p *EipParser) parseAuthorEntry(entry string) types.EipAuthor {
	author := types.EipAuthor{}
	rest := entry

	if m := emailRE.FindStringSubmatch(rest); m != nil {
		author.Email = m[1]
		rest = strings.Replace(rest, m[0], "", 1)
	}
	if m := handleRE.FindStringSubmatch(rest); m != nil {
		author.GithubHandle = m[1]
		rest = strings.Replace(rest, m[0], "", 1)
	}
	// handles come wrapped in parens, drop the leftover pair
	rest = strings.Replace(rest, "()", "", 1)
	if m := annotationRE.FindStringSubmatch(rest); m != nil {
		author.Organization = strings.TrimSpace(m[1])
		rest = strings.Replace(rest, m[0], "", 1)
	}
	author.Name = strings.TrimSpace(rest)

	author.Organization = p.norm.ResolveAuthor(author)
	return author
}

// splitAuthorList splits a comma separated author field, keeping commas
// inside angle brackets or parentheses intact.
func splitAuthorList(field string) []string {
	var entries []string
	depth := 0
	start := 0
	for i, r := range field {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if e := strings.TrimSpace(field[start:i]); e != "" {
					entries = append(entries, e)
				}
				start = i + 1
			}
		}
	}
	if e := strings.TrimSpace(field[start:]); e != "" {
		entries = append(entries, e)
	}
	return entries
}

// ProcessRepository parses every proposal document in the collection.
// Successes are returned sorted by eip number; failures are collected
// separately so one malformed document never aborts the batch.
func (p *EipParser) ProcessRepository(docs []Document, workers int) ([]*types.EipMetadata, []types.ParseFailure) {
	parsed, failures := processDocuments(docs, workers, func(doc Document) (*types.EipMetadata, *types.ParseFailure) {
		return p.ParseDocument(doc)
	})
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Number < parsed[j].Number })
	for _, f := range failures {
		logger.WithField("document", f.Document).WithField("field", f.Field).Warn(f.Reason)
	}
	logger.WithField("parsed", len(parsed)).WithField("failed", len(failures)).Info("processed proposal documents")
	return parsed, failures
}
