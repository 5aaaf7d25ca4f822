package parser

import (
	"testing"

	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meetingDoc = `# All Core Devs Meeting 42

Date: 2020-01-10

Agenda: https://github.com/ethereum/pm/issues/142

## Attendees

- Tim Beiko (EF)
- Lukasz Rozmej (Nethermind)
- Danno Ferrin (Besu)
- lukasz rozmej

## Notes

Peter Szilagyi raised the state size discussion.
`

func TestExtractAttendees(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())

	meeting, failure := p.ExtractAttendees(Document{Name: "meeting-42.md", Content: meetingDoc})

	require.Nil(t, failure)
	assert.Equal(t, uint64(42), meeting.Number)
	assert.Equal(t, "2020-01-10", meeting.Date)
	assert.Equal(t, "meeting-42.md", meeting.SourceFile)

	// duplicate attendee with different casing collapses to one entry
	require.Len(t, meeting.Attendees, 3)
	assert.Equal(t, "Tim Beiko", meeting.Attendees[0].Name)
	assert.Equal(t, "EF", meeting.Attendees[0].Affiliation)
	assert.Equal(t, "Ethereum Foundation", meeting.Attendees[0].Organization)
	assert.Equal(t, "Nethermind", meeting.Attendees[1].Organization)
	assert.Equal(t, "Consensys", meeting.Attendees[2].Organization)
}

func TestExtractAttendeesSectionEndsAtHeading(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())

	meeting, failure := p.ExtractAttendees(Document{Name: "meeting-42.md", Content: meetingDoc})

	require.Nil(t, failure)
	for _, a := range meeting.Attendees {
		assert.NotContains(t, a.Name, "Peter")
	}
}

func TestExtractAttendeesInlineList(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())
	content := "# Core Devs Call\n\nAttendees: Pooja Ranjan, Mikhail Kalinin (TxRx)\n\nNotes follow.\n"

	meeting, failure := p.ExtractAttendees(Document{Name: "call-77.md", Content: content})

	require.Nil(t, failure)
	require.Len(t, meeting.Attendees, 2)
	assert.Equal(t, "Pooja Ranjan", meeting.Attendees[0].Name)
	assert.Equal(t, "Ethereum Cat Herders", meeting.Attendees[0].Organization)
	assert.Equal(t, "TxRx", meeting.Attendees[1].Organization)
	// number falls back to the filename
	assert.Equal(t, uint64(77), meeting.Number)
}

func TestExtractAttendeesNoHeading(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())
	content := "# Meeting Notes\n\nWe discussed gas limits.\n"

	meeting, failure := p.ExtractAttendees(Document{Name: "notes.md", Content: content})

	assert.Nil(t, meeting)
	require.NotNil(t, failure)
	assert.Equal(t, "attendees", failure.Field)
}

func TestExtractAttendeesUnmappedGoesToUnknown(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())
	content := "## Participants\n\n- Total Stranger\n"

	meeting, failure := p.ExtractAttendees(Document{Name: "meeting-1.md", Content: content})

	require.Nil(t, failure)
	require.Len(t, meeting.Attendees, 1)
	assert.Equal(t, orgmap.Unknown, meeting.Attendees[0].Organization)
}

func TestExtractAttendeesCollectsLinks(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())

	meeting, failure := p.ExtractAttendees(Document{Name: "meeting-42.md", Content: meetingDoc})

	require.Nil(t, failure)
	assert.Contains(t, meeting.Links, "https://github.com/ethereum/pm/issues/142")
}

func TestMeetingDate(t *testing.T) {
	assert.Equal(t, "2021-03-05", meetingDate("Date: 2021-03-05\n"))
	assert.Equal(t, "14th January 2020", meetingDate("held on 14th January 2020 via zoom"))
	assert.Equal(t, "Unknown", meetingDate("no date anywhere"))
}

func TestSplitAffiliation(t *testing.T) {
	name, affiliation := splitAffiliation("Tim Beiko (EF)")
	assert.Equal(t, "Tim Beiko", name)
	assert.Equal(t, "EF", affiliation)

	name, affiliation = splitAffiliation("Tim Beiko")
	assert.Equal(t, "Tim Beiko", name)
	assert.Empty(t, affiliation)
}

func TestProcessMeetingsPartialFailure(t *testing.T) {
	p := NewMeetingParser(orgmap.Default())
	docs := []Document{
		{Name: "meeting-42.md", Content: meetingDoc},
		{Name: "broken.md", Content: "nothing here"},
		{Name: "meeting-7.md", Content: "## Attendees\n\n- Tim Beiko (EF)\n"},
	}

	parsed, failures := p.ProcessMeetings(docs, 2)

	require.Len(t, parsed, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "broken.md", failures[0].Document)
	// sorted by meeting number
	assert.Equal(t, uint64(7), parsed[0].Number)
	assert.Equal(t, uint64(42), parsed[1].Number)
}
