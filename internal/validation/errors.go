package validation

import "strings"

// Issue is a single violated rule. Path names the offending field; an empty
// path refers to the input as a whole.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error reports every issue found in one input.
type Error struct {
	Issues []Issue
}

// Error joins the issues as "path: message" pairs separated by "; ".
func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "Invalid request"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		path := issue.Path
		if path == "" {
			path = "value"
		}
		parts = append(parts, path+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}

// issues accumulates violations while an input is being parsed.
type issues []Issue

func (is *issues) add(path, message string) {
	*is = append(*is, Issue{Path: path, Message: message})
}

// err returns nil when nothing was recorded.
func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &Error{Issues: is}
}
