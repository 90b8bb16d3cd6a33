package domain

// PlaceholderName is the display name of a room whose persona has not been
// resolved from the directory yet. Once a real name is known, updates may
// never regress it back to this value.
const PlaceholderName = "페르소나"

// ChatRoom is the client-side container for one conversation with one
// persona. A room with an empty PersonaID exists but is not yet bound.
type ChatRoom struct {
	ID          RoomID
	PersonaID   PersonaID
	DISCType    DISCType
	PersonaName string
	Messages    []Message
	// Summary is nil until a summary has actually been fetched or
	// generated; nil means "not yet computed", never "computed as empty".
	Summary *Summary
}

// Clone returns a deep copy of the room. Stored rooms are never mutated
// after publication, so observers can hold a clone across later writes.
func (r ChatRoom) Clone() ChatRoom {
	out := r
	if r.Messages != nil {
		out.Messages = make([]Message, len(r.Messages))
		copy(out.Messages, r.Messages)
	}
	if r.Summary != nil {
		s := *r.Summary
		out.Summary = &s
	}
	return out
}

// Summary is a server-computed evaluation of a transcript.
type Summary struct {
	SummaryText  string
	Score        int // 0-10
	CorePoints   string
	Improvements string
	Tips         string
	Timestamp    int64 // epoch milliseconds
}
