package emit

//go:generate go tool stringer -type=Status -linecomment -output=status_string.go

// Status reports what generation did to one output file.
type Status int

const (
	StatusUnchanged Status = iota // unchanged
	StatusCreated                 // created
	StatusUpdated                 // updated
)
