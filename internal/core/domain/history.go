package domain

import "time"

// Exchange is one question/answer pair kept in the local ask history.
type Exchange struct {
	// ID is a generated unique identifier.
	ID string

	// Question is the user's question as submitted.
	Question string

	// Answer is the full backend response, citations included.
	Answer Answer

	// CreatedAt is when the exchange completed.
	CreatedAt time.Time
}
