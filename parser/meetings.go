package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/types"
	"mvdan.cc/xurls/v2"
)

var (
	attendeeHeadingRE = regexp.MustCompile(`(?i)^#{0,6}\s*\**(attendees|participants)\**\s*:?\s*$`)
	attendeeInlineRE  = regexp.MustCompile(`(?i)^\**(attendees|participants)\**\s*:\s*(.+)$`)
	markdownHeadingRE = regexp.MustCompile(`^#{1,6}\s`)
	meetingNumberRE   = regexp.MustCompile(`All Core Devs (?:Meeting |Call |)#?(\d+)`)
	filenameNumberRE  = regexp.MustCompile(`(\d+)`)
	isoDateRE         = regexp.MustCompile(`Date:\s*(\d{4}-\d{2}-\d{2})`)
	proseDateRE       = regexp.MustCompile(`(\d{1,2}(?:st|nd|rd|th)? \w+ \d{4})`)
	bulletRE          = regexp.MustCompile(`^[-*+]\s+`)
	affiliationRE     = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)$`)

	linkRE = xurls.Strict()

	// section words that show up as list items but are not people
	nonAttendeeWords = map[string]bool{
		"agenda": true, "summary": true, "actions": true, "notes": true,
	}
)

// MeetingParser extracts attendance from core dev meeting notes
type MeetingParser struct {
	norm *orgmap.Normalizer
}

func NewMeetingParser(norm *orgmap.Normalizer) *MeetingParser {
	return &MeetingParser{norm: norm}
}

// ExtractAttendees parses one meeting-notes document. The attendee
// section is located by its heading and ends at the next heading, a
// blank line after at least one name, or end of document. Attendees are
// deduplicated case-insensitively within the meeting. A document without
// a recognizable attendee heading is a failure, which keeps "no meeting
// found" distinct from "meeting with zero attendees".
func (p *MeetingParser) ExtractAttendees(doc Document) (*types.MeetingData, *types.ParseFailure) {
	lines := strings.Split(doc.Content, "\n")

	sectionStart := -1
	var inline string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if attendeeHeadingRE.MatchString(trimmed) {
			sectionStart = i + 1
			break
		}
		if m := attendeeInlineRE.FindStringSubmatch(trimmed); m != nil {
			sectionStart = i + 1
			inline = strings.TrimSpace(m[2])
			break
		}
	}
	if sectionStart < 0 {
		return nil, &types.ParseFailure{Document: doc.Name, Field: "attendees", Reason: "no attendee section heading"}
	}

	meeting := &types.MeetingData{
		Number:     p.meetingNumber(doc),
		Date:       meetingDate(doc.Content),
		Links:      linkRE.FindAllString(doc.Content, -1),
		SourceFile: doc.Name,
	}

	seen := make(map[string]bool)
	addNames := func(raw string) {
		for _, piece := range strings.Split(raw, ",") {
			name, affiliation := splitAffiliation(strings.TrimSpace(piece))
			if len(name) < 2 || nonAttendeeWords[strings.ToLower(name)] {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			meeting.Attendees = append(meeting.Attendees, types.Attendee{
				Name:         name,
				Affiliation:  affiliation,
				Organization: p.norm.ResolveAttendee(name, affiliation),
			})
		}
	}

	addNames(inline)
	for _, line := range lines[sectionStart:] {
		trimmed := strings.TrimSpace(line)
		if markdownHeadingRE.MatchString(trimmed) {
			break
		}
		if trimmed == "" {
			if len(meeting.Attendees) > 0 {
				break
			}
			continue
		}
		addNames(bulletRE.ReplaceAllString(trimmed, ""))
	}

	return meeting, nil
}

func (p *MeetingParser) meetingNumber(doc Document) uint64 {
	if m := meetingNumberRE.FindStringSubmatch(doc.Content); m != nil {
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return n
		}
	}
	if m := filenameNumberRE.FindStringSubmatch(doc.Name); m != nil {
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func meetingDate(content string) string {
	if m := isoDateRE.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := proseDateRE.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return "Unknown"
}

// splitAffiliation splits "Name (Org)" into its parts
func splitAffiliation(raw string) (name, affiliation string) {
	if m := affiliationRE.FindStringSubmatch(raw); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return raw, ""
}

// ProcessMeetings parses every meeting-notes document in the collection,
// with the same batch semantics as ProcessRepository: failures are
// collected per document and the batch always completes. Successes are
// sorted by meeting number.
func (p *MeetingParser) ProcessMeetings(docs []Document, workers int) ([]*types.MeetingData, []types.ParseFailure) {
	parsed, failures := processDocuments(docs, workers, func(doc Document) (*types.MeetingData, *types.ParseFailure) {
		return p.ExtractAttendees(doc)
	})
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Number < parsed[j].Number })
	for _, f := range failures {
		logger.WithField("document", f.Document).WithField("field", f.Field).Warn(f.Reason)
	}
	logger.WithField("parsed", len(parsed)).WithField("failed", len(failures)).Info("processed meeting notes")
	return parsed, failures
}
