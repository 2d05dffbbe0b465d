// Package comment provides the comment identifier and deletion outcome types
// shared by the client and the delete handler.
package comment

import "strconv"

// ID identifies a comment on the server. It is opaque to the client and is
// sent verbatim in the delete path.
type ID string

// FromInt renders an integer comment ID in its decimal form.
func FromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// Outcome is the server's answer to a delete request.
// Msg is only set on failure.
type Outcome struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
}

// Message returns the server-supplied message, or fallback when it is empty.
func (o *Outcome) Message(fallback string) string {
	if o == nil || o.Msg == "" {
		return fallback
	}
	return o.Msg
}
