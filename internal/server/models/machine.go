package models

import (
	"time"

	"github.com/rivalrockets/rivalrockets/internal/common"
)

// Machine is a registered PC build. Notes are raw markdown; the html
// column exists for parity with the other entities but machines have
// no render step, so nothing populates it.
type Machine struct {
	ID               int64     `db:"id"`
	SystemName       string    `db:"system_name"`
	SystemNotes      string    `db:"system_notes"`
	SystemNotesHTML  string    `db:"system_notes_html"`
	Timestamp        time.Time `db:"timestamp"`
	Owner            string    `db:"owner"`
	AuthorID         int64     `db:"author_id"`
	ActiveRevisionID *int64    `db:"active_revision_id"`
}

// MachineInput is the request payload for creating a machine. The
// author is set by the caller, not by the constructor.
type MachineInput struct {
	SystemName  string `json:"system_name"`
	SystemNotes string `json:"system_notes"`
	Owner       string `json:"owner"`
}

// NewMachineFromRequest validates the payload and returns a
// partially-populated machine. A missing system_name is a
// ValidationError naming the field.
func NewMachineFromRequest(in MachineInput) (*Machine, error) {
	if in.SystemName == "" {
		return nil, common.NewValidationError("machine", "system_name")
	}
	return &Machine{
		SystemName:  in.SystemName,
		SystemNotes: in.SystemNotes,
		Owner:       in.Owner,
	}, nil
}

// MachinePatch carries the updatable machine fields. Nil pointers mean
// "leave as is", so a partial body never blanks the other columns.
type MachinePatch struct {
	SystemName  *string `json:"system_name"`
	SystemNotes *string `json:"system_notes"`
	Owner       *string `json:"owner"`
}

// Apply merges the patch into the machine. Setting system_name to the
// empty string is rejected the same way the constructor rejects it.
func (p MachinePatch) Apply(m *Machine) error {
	if p.SystemName != nil {
		if *p.SystemName == "" {
			return common.NewValidationError("machine", "system_name")
		}
		m.SystemName = *p.SystemName
	}
	if p.SystemNotes != nil {
		m.SystemNotes = *p.SystemNotes
	}
	if p.Owner != nil {
		m.Owner = *p.Owner
	}
	return nil
}

// MachineProjection is the JSON view of a machine returned over the API.
type MachineProjection struct {
	URL             string    `json:"url"`
	SystemName      string    `json:"system_name"`
	SystemNotes     string    `json:"system_notes"`
	SystemNotesHTML string    `json:"system_notes_html"`
	Timestamp       time.Time `json:"timestamp"`
	Owner           string    `json:"owner"`
	Author          string    `json:"author"`
	Revisions       string    `json:"revisions"`
	RevisionCount   int64     `json:"revision_count"`
	Comments        string    `json:"comments"`
	CommentCount    int64     `json:"comment_count"`
}

// Projection renders the machine with its hyperlink graph and child
// collection counts.
func (m *Machine) Projection(urls *URLBuilder, revisionCount, commentCount int64) MachineProjection {
	return MachineProjection{
		URL:             urls.Machine(m.ID),
		SystemName:      m.SystemName,
		SystemNotes:     m.SystemNotes,
		SystemNotesHTML: m.SystemNotesHTML,
		Timestamp:       m.Timestamp,
		Owner:           m.Owner,
		Author:          urls.User(m.AuthorID),
		Revisions:       urls.MachineRevisions(m.ID),
		RevisionCount:   revisionCount,
		Comments:        urls.MachineComments(m.ID),
		CommentCount:    commentCount,
	}
}
