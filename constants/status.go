package constants

import (
	"strings"
)

// StatusID is the manually assigned identifier of a job status row.
// IDs are small fixed values, never auto-generated, so status codes stay
// stable across databases.
type StatusID int16

// Stable values (store these exact IDs and names in DB).
const (
	StatusNotDelivered StatusID = 1 // device not yet handed in
	StatusDelivered    StatusID = 2 // device handed in, work not started
	StatusInProgress   StatusID = 3
	StatusMissingPart  StatusID = 4 // blocked waiting on a part
	StatusFinished     StatusID = 5
	StatusPickedUp     StatusID = 6 // terminal, device returned to customer
)

var statusNames = map[StatusID]string{
	StatusNotDelivered: "notDelivered",
	StatusDelivered:    "delivered",
	StatusInProgress:   "inProgress",
	StatusMissingPart:  "missingPart",
	StatusFinished:     "finished",
	StatusPickedUp:     "pickedUp",
}

var allStatuses = []StatusID{
	StatusNotDelivered,
	StatusDelivered,
	StatusInProgress,
	StatusMissingPart,
	StatusFinished,
	StatusPickedUp,
}

// Name returns the canonical name for the status, or "" for unknown IDs.
func (s StatusID) Name() string {
	return statusNames[s]
}

// Valid reports whether the ID belongs to the closed status set.
func (s StatusID) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// AllStatuses returns the closed set in ascending ID order.
func AllStatuses() []StatusID {
	out := make([]StatusID, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Canonicalize maps a free-form status name to its ID.
func Canonicalize(input string) (StatusID, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return 0, false
	}
	for id, name := range statusNames {
		if normalized == strings.ToLower(name) {
			return id, true
		}
	}
	return 0, false
}
