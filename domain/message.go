package domain

import (
	"strconv"
	"time"
)

// Message represents one chat turn. IDs are strings: the client mints them
// from the send timestamp for user turns and for the loading placeholder of
// an assistant turn; the placeholder id stays stable when the placeholder is
// replaced with the final server content.
type Message struct {
	ID              string
	Text            string
	IsUser          bool
	Timestamp       int64 // epoch milliseconds
	ProfileImageURL string
	Emotion         string
}

// MintMessageID derives a message id from a point in time, the same way the
// original client stamps outgoing messages.
func MintMessageID(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10)
}
