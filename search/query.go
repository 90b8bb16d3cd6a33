package search

import (
	"strconv"
	"strings"

	"persona-chat/domain"
)

// Query represents the structured parameters for a transcript search.
// It decouples the raw REPL input from the actual index engine requirements.
type Query struct {
	RawInput string        // The original line from the user
	Terms    string        // The actual text to search in Bluge
	RoomID   domain.RoomID // Target room, empty means all rooms
	Lang     string        // ISO 639-1 language filter, empty means any
	Limit    int           // Number of results
}

// ParseQuery parses a raw string to extract command-line style arguments.
// Example: /find invoice --room persona-3 --lang ko --limit 5
func ParseQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "room":
				query.RoomID = domain.RoomID(val)
			case "lang":
				query.Lang = strings.ToLower(val)
			case "limit":
				if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
					query.Limit = limit
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		// If it's not a flag, it's a search term
		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
