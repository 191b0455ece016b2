package candidate

import "github.com/Abraxas-365/seeker/pkg/kernel"

// IntentKind says whether a submission creates or updates the persisted record
type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentUpdate IntentKind = "update"
)

// SubmitIntent is a create-or-update request handed to the store for
// asynchronous execution
type SubmitIntent struct {
	Kind        IntentKind
	CandidateID kernel.CandidateID
	Payload     Payload
}

// NewSubmitIntent picks the intent kind from the persisted record id
func NewSubmitIntent(rec FormRecord, userID kernel.UserID, existing kernel.CandidateID) SubmitIntent {
	kind := IntentCreate
	if !existing.IsEmpty() {
		kind = IntentUpdate
	}
	return SubmitIntent{
		Kind:        kind,
		CandidateID: existing,
		Payload:     NewPayload(rec, userID, existing),
	}
}
