package parser

import (
	"testing"

	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eip1Doc = `---
eip: 1
title: EIP Purpose and Guidelines
status: Living
type: Meta
author: Martin Becze <mb@ethereum.org>, Hudson Jameson <hudson@ethereum.org>
created: 2015-10-27
---

## What is an EIP?

EIP stands for Ethereum Improvement Proposal.
`

const eip20Doc = `---
eip: 20
title: Token Standard
author: Fabian Vogelsteller (@frozeman), Vitalik Buterin <vitalik@ethereum.org> (Ethereum Foundation)
status: Final
created: 2015-11-19
---

A standard interface for tokens.
`

func TestParseDocumentEmailAuthors(t *testing.T) {
	p := NewEipParser(orgmap.Default())

	meta, failure := p.ParseDocument(Document{Name: "eip-1.md", Content: eip1Doc})

	require.Nil(t, failure)
	assert.Equal(t, uint64(1), meta.Number)
	assert.Equal(t, "EIP Purpose and Guidelines", meta.Title)
	assert.Equal(t, "Living", meta.Status)
	assert.Equal(t, "2015-10-27", meta.Created)
	require.Len(t, meta.Authors, 2)
	assert.Equal(t, "Martin Becze", meta.Authors[0].Name)
	assert.Equal(t, "mb@ethereum.org", meta.Authors[0].Email)
	assert.Equal(t, "Ethereum Foundation", meta.Authors[0].Organization)
	assert.Equal(t, "Hudson Jameson", meta.Authors[1].Name)
	assert.Equal(t, "Ethereum Foundation", meta.Authors[1].Organization)
}

func TestParseDocumentHandleAndAnnotation(t *testing.T) {
	p := NewEipParser(orgmap.Default())

	meta, failure := p.ParseDocument(Document{Name: "eip-20.md", Content: eip20Doc})

	require.Nil(t, failure)
	assert.Equal(t, uint64(20), meta.Number)
	require.Len(t, meta.Authors, 2)
	assert.Equal(t, "Fabian Vogelsteller", meta.Authors[0].Name)
	assert.Equal(t, "frozeman", meta.Authors[0].GithubHandle)
	assert.Equal(t, "LUKSO", meta.Authors[0].Organization)
	assert.Equal(t, "Vitalik Buterin", meta.Authors[1].Name)
	assert.Equal(t, "vitalik@ethereum.org", meta.Authors[1].Email)
	// explicit annotation wins over every other signal
	assert.Equal(t, "Ethereum Foundation", meta.Authors[1].Organization)
}

func TestParseDocumentNoFrontmatter(t *testing.T) {
	p := NewEipParser(orgmap.Default())

	meta, failure := p.ParseDocument(Document{Name: "eip-9.md", Content: "# Just a heading\n\nNo header block here.\n"})

	assert.Nil(t, meta)
	require.NotNil(t, failure)
	assert.Equal(t, "header", failure.Field)
	assert.Equal(t, "eip-9.md", failure.Document)
}

func TestParseDocumentMissingAuthor(t *testing.T) {
	p := NewEipParser(orgmap.Default())
	doc := Document{Name: "eip-7.md", Content: "---\neip: 7\ntitle: Homestead\nstatus: Final\n---\n\nBody.\n"}

	meta, failure := p.ParseDocument(doc)

	assert.Nil(t, meta)
	require.NotNil(t, failure)
	assert.Equal(t, "author", failure.Field)
}

func TestParseDocumentNumberFromFilename(t *testing.T) {
	p := NewEipParser(orgmap.Default())
	doc := Document{Name: "eip-42.md", Content: "---\ntitle: Untitled\nstatus: Draft\nauthor: Someone <s@example.dev>\n---\n\nBody.\n"}

	meta, failure := p.ParseDocument(doc)

	require.Nil(t, failure)
	assert.Equal(t, uint64(42), meta.Number)
}

func TestParseAuthorEntryUnknownFallback(t *testing.T) {
	p := NewEipParser(orgmap.Default())
	doc := Document{Name: "eip-5.md", Content: "---\neip: 5\nstatus: Draft\nauthor: Some Stranger <stranger@gmail.com>\n---\n"}

	meta, failure := p.ParseDocument(doc)

	require.Nil(t, failure)
	require.Len(t, meta.Authors, 1)
	assert.Equal(t, orgmap.Unknown, meta.Authors[0].Organization)
}

func TestParseAuthorEntryEmailInference(t *testing.T) {
	p := NewEipParser(orgmap.Default())
	doc := Document{Name: "eip-6.md", Content: "---\neip: 6\nstatus: Draft\nauthor: Jane Dev <jane@nethermind.io>\n---\n"}

	meta, failure := p.ParseDocument(doc)

	require.Nil(t, failure)
	require.Len(t, meta.Authors, 1)
	assert.Equal(t, "Nethermind", meta.Authors[0].Organization)
}

func TestSplitAuthorList(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{
			name:  "plain commas",
			field: "Alice, Bob, Carol",
			want:  []string{"Alice", "Bob", "Carol"},
		},
		{
			name:  "comma inside parens",
			field: "Alice <a@x.dev>, Bob (Org, Inc.)",
			want:  []string{"Alice <a@x.dev>", "Bob (Org, Inc.)"},
		},
		{
			name:  "trailing comma",
			field: "Alice,",
			want:  []string{"Alice"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAuthorList(tt.field))
		})
	}
}

func TestProcessRepositoryPartialFailure(t *testing.T) {
	p := NewEipParser(orgmap.Default())
	docs := []Document{
		{Name: "eip-20.md", Content: eip20Doc},
		{Name: "eip-3.md", Content: "no frontmatter at all"},
		{Name: "eip-1.md", Content: eip1Doc},
	}

	parsed, failures := p.ProcessRepository(docs, 2)

	// one bad document never aborts the batch
	require.Len(t, parsed, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "eip-3.md", failures[0].Document)
	// successes come back sorted by proposal number
	assert.Equal(t, uint64(1), parsed[0].Number)
	assert.Equal(t, uint64(20), parsed[1].Number)
}
