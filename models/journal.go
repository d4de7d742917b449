package models

import "time"

// JournalEntry is a free-form journal record. Title and Body are sensitive
// and stored encrypted; Mood and Tags stay in plaintext so entries can be
// filtered and sorted without decrypting content.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Mood      int       `json:"mood"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalFilter narrows a journal listing. Zero values mean "no constraint".
// Only plaintext metadata columns can be filtered; encrypted content is not
// searchable.
type JournalFilter struct {
	From    time.Time
	To      time.Time
	MinMood int
	Tag     string
	Limit   uint64
}
