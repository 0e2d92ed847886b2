package request

// SubmitRunRequest selects sources by name; an empty list selects every
// built-in source. Keywords filter discovered link titles.
type SubmitRunRequest struct {
	Sources  []string `json:"sources"`
	Keywords []string `json:"keywords"`
}
