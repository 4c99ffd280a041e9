package textsync

// Error is the error kind type of the textsync module.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a byte position is greater than the
// length of the text.
const ErrIndexOutOfBounds = Error("index out of bounds")

// ErrMisalignedBoundary signals a byte offset that points into the middle of
// a UTF-8 encoded scalar value.
const ErrMisalignedBoundary = Error("byte offset not on a character boundary")

// ErrLineOutOfRange signals a line number equal to or beyond the line count.
const ErrLineOutOfRange = Error("line number out of range")

// ErrCharacterOutOfRange signals a character offset beyond the end of a line
// under strict validation (the protocol rule is to clamp instead).
const ErrCharacterOutOfRange = Error("character offset out of range")

// ErrInvalidUTF16Boundary signals a UTF-16 character offset that points
// between the two code units of a surrogate pair.
const ErrInvalidUTF16Boundary = Error("position splits a UTF-16 surrogate pair")

// ErrMalformedRange signals an edit range with end < start or end beyond the
// text length.
const ErrMalformedRange = Error("malformed edit range")

// ErrOverlappingEdits signals a batch with intersecting edit ranges; the
// whole batch is rejected.
const ErrOverlappingEdits = Error("edit ranges overlap")

// ErrTextCompleted signals that a builder has already completed a text and
// it's illegal to further add fragments.
const ErrTextCompleted = Error("forbidden to add fragments; text has been completed")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = Error("illegal arguments")
