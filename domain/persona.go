// Package domain contains the core concepts of the persona chat client:
// personas, chat rooms, messages and transcript summaries.
package domain

import (
	"strconv"
	"strings"
)

// PersonaID is the server-assigned identifier of a persona.
// It is opaque to the client but always numeric text on the wire.
type PersonaID string

// Numeric parses the identifier and reports whether it is a valid
// server-side id. Operations that target a single persona must refuse
// a non-numeric id before touching the network.
func (id PersonaID) Numeric() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

// RoomID identifies a chat room. For a persona-backed room it is always
// derived with RoomIDFor; the store never accepts an independently chosen
// room id for a persona.
type RoomID string

const roomIDPrefix = "persona-"

// RoomIDFor derives the canonical room id for a persona.
func RoomIDFor(id PersonaID) RoomID {
	return RoomID(roomIDPrefix + string(id))
}

// PersonaID recovers the owning persona id from a derived room id.
// It returns the empty id for a room that was never bound to a persona.
func (r RoomID) PersonaID() PersonaID {
	rest, ok := strings.CutPrefix(string(r), roomIDPrefix)
	if !ok {
		return ""
	}
	return PersonaID(rest)
}

// DISCType is the 4-way personality tag carried by every persona.
type DISCType string

const (
	DISCDominance   DISCType = "D"
	DISCInfluence   DISCType = "I"
	DISCSteadiness  DISCType = "S"
	DISCCompliance  DISCType = "C"
	DefaultDISCType          = DISCDominance
)

// ParseDISCType maps free-form input to a DISCType, defaulting to D for
// anything absent or invalid.
func ParseDISCType(s string) DISCType {
	switch DISCType(strings.ToUpper(strings.TrimSpace(s))) {
	case DISCDominance, DISCInfluence, DISCSteadiness, DISCCompliance:
		return DISCType(strings.ToUpper(strings.TrimSpace(s)))
	default:
		return DefaultDISCType
	}
}

// Persona is a directory entry as known to the remote service.
type Persona struct {
	ID              PersonaID
	Name            string
	DISCType        DISCType
	Age             int
	Gender          string
	ProfileImageURL string
}
