package model

import "time"

// Presenter represents a person presenting at an activity, as stored
// in the `presenters` table.  Presenters always belong to exactly one
// activity and carry no lifecycle of their own.
//
// Fields:
//  ID         – primary key identifier.
//  ActivityID – activity this presenter belongs to.
//  Name       – presenter's display name.
//  Job        – optional job title or affiliation.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Presenter struct {
	ID         uint64    `json:"id"`
	ActivityID uint64    `json:"activity_id"`
	Name       string    `json:"name"`
	Job        *string   `json:"job,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
