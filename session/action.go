package session

import "github.com/google/uuid"

// PendingAction is a deferred note operation captured when a login is
// initiated from a context that implies a follow-up write.  It's carried
// through the login attempt into the resulting Session, where the caller
// replays it exactly once after authentication succeeds (see
// Backend.TakePendingAction).
//
// The set of actions is closed: only the types in this package implement it.
type PendingAction interface {
	pendingAction()
}

// CheckNote marks a note as checked.
type CheckNote struct {
	NoteID uuid.UUID
}

// UncheckNote clears a note's checked mark.
type UncheckNote struct {
	NoteID uuid.UUID
}

// EditNote replaces a note's content.
type EditNote struct {
	NoteID  uuid.UUID
	Content string
}

// DeleteNote removes a note.
type DeleteNote struct {
	NoteID uuid.UUID
}

// CreateNote creates a new note with the given content.
type CreateNote struct {
	Content string
}

func (CheckNote) pendingAction()   {}
func (UncheckNote) pendingAction() {}
func (EditNote) pendingAction()    {}
func (DeleteNote) pendingAction()  {}
func (CreateNote) pendingAction()  {}
