package entity

// TextRange addresses a span of a report body. Start is 1-indexed, End is
// exclusive, and both count UTF-16 code units.
type TextRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	URL   string `json:"url,omitempty"`
}

// ReportRequest is the publisher-neutral description of a compiled report.
type ReportRequest struct {
	Title    string
	Text     string
	Bold     []TextRange
	Links    []TextRange
	Articles []Article
}

// PublishedDocument identifies a report after a publisher accepted it.
type PublishedDocument struct {
	ID  string
	URL string
}
