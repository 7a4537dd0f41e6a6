package util

// ErrPublic is an error whose message is safe to show to the user
// as-is.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}
