package models

import "fmt"

// URLBuilder renders the hyperlink fields in entity projections.
// Base is the externally visible API root including the version
// prefix, e.g. "http://localhost:8080/api/v1". It is threaded in from
// configuration rather than read from global state.
type URLBuilder struct {
	Base string
}

func NewURLBuilder(base string) *URLBuilder {
	return &URLBuilder{Base: base}
}

func (b *URLBuilder) User(id int64) string {
	return fmt.Sprintf("%s/users/%d", b.Base, id)
}

func (b *URLBuilder) UserMachines(id int64) string {
	return fmt.Sprintf("%s/users/%d/machines/", b.Base, id)
}

func (b *URLBuilder) Machine(id int64) string {
	return fmt.Sprintf("%s/machines/%d", b.Base, id)
}

func (b *URLBuilder) MachineRevisions(id int64) string {
	return fmt.Sprintf("%s/machines/%d/revisions/", b.Base, id)
}

func (b *URLBuilder) MachineComments(id int64) string {
	return fmt.Sprintf("%s/machines/%d/comments/", b.Base, id)
}

func (b *URLBuilder) Revision(id int64) string {
	return fmt.Sprintf("%s/revisions/%d", b.Base, id)
}

func (b *URLBuilder) Comment(id int64) string {
	return fmt.Sprintf("%s/comments/%d", b.Base, id)
}
