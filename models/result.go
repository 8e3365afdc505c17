package models

// Result is the outcome of one command invocation. Link is set only by the
// document-open command, for the caller to act on.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IsError bool   `json:"isError,omitempty"`
	Link    string `json:"link,omitempty"`
}
