package types

// EipAuthor is one author credit on a proposal. Name may be empty for
// entries that only carry a handle.
type EipAuthor struct {
	Name         string
	Email        string
	GithubHandle string
	Organization string
}

// EipMetadata holds the header fields of one proposal document. Authors
// keep the order of the author line in the source document.
type EipMetadata struct {
	Number  uint64
	Title   string
	Status  string
	Created string
	Authors []EipAuthor
}

// Attendee is one deduplicated participant of a core dev meeting
type Attendee struct {
	Name         string
	Affiliation  string // raw annotation from the notes, may be empty
	Organization string // resolved canonical organization
}

// MeetingData holds the extracted attendance of one core dev meeting
type MeetingData struct {
	Number     uint64
	Date       string
	Attendees  []Attendee
	Links      []string
	SourceFile string
}

// ParseFailure describes why a single document could not be parsed. It is
// collected per batch and never aborts processing of other documents.
type ParseFailure struct {
	Document string
	Field    string
	Reason   string
}

func (f ParseFailure) String() string {
	if f.Field == "" {
		return f.Document + ": " + f.Reason
	}
	return f.Document + ": " + f.Field + ": " + f.Reason
}

// AuthorRow is one normalized output row per (eip, author)
type AuthorRow struct {
	Eip          uint64 `db:"eip"`
	Title        string `db:"title"`
	Status       string `db:"status"`
	Author       string `db:"author"`
	Email        string `db:"email"`
	GithubHandle string `db:"github_handle"`
	Organization string `db:"organization"`
}

// AttendanceRow is one normalized output row per (meeting, attendee)
type AttendanceRow struct {
	Meeting      uint64 `db:"meeting"`
	Date         string `db:"date"`
	Attendee     string `db:"attendee"`
	Organization string `db:"organization"`
	SourceFile   string `db:"source_file"`
}
