package errs

// Business-rule failures are expected outcomes of a request (no seat, deadline passed, ...).
// Callers tell them apart from infrastructure failures with IsBusinessRule
// without enumerating every sentinel.
var (
	ErrBusinessRule = New("business rule violation")

	// Invariant violations indicate a bug, never a user-facing outcome.
	ErrInvariant = New("invariant violation")
)

// classError keeps its own identity. Is reports membership of its class.
type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool { return target == e.class }

func Rule(msg string) error {
	return &classError{msg: msg, class: ErrBusinessRule}
}

func Invariant(msg string) error {
	return &classError{msg: msg, class: ErrInvariant}
}

func IsBusinessRule(err error) bool {
	return isClass(err, ErrBusinessRule)
}

func IsInvariant(err error) bool {
	return isClass(err, ErrInvariant)
}

func isClass(err, class error) bool {
	var ce *classError
	return As(err, &ce) && ce.class == class
}
