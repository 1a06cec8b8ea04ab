package api

// Kind tags the outcome of a backend call.
type Kind int

const (
	// KindOK means the backend answered with success:true.
	KindOK Kind = iota
	// KindRejected means a response arrived but the backend refused the call.
	KindRejected
	// KindUnreachable covers network failures and malformed responses.
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindRejected:
		return "rejected"
	case KindUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// UnreachableMessage is shown for transport failures.
const UnreachableMessage = "Unable to connect to server. Please try again."

// Result is the tagged outcome of a backend call. Value is only meaningful
// when Kind is KindOK; Message only when it is not.
type Result[T any] struct {
	Kind    Kind
	Value   T
	Message string
	// HTTP status of the response, 0 when none arrived.
	Status int
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Kind: KindOK, Value: v}
}

// Rejected wraps an application-level refusal.
func Rejected[T any](status int, message string) Result[T] {
	return Result[T]{Kind: KindRejected, Status: status, Message: message}
}

// Unreachable wraps a transport failure.
func Unreachable[T any](status int) Result[T] {
	return Result[T]{Kind: KindUnreachable, Status: status, Message: UnreachableMessage}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool { return r.Kind == KindOK }

// Unauthorized reports whether the backend refused the bearer token.
func (r Result[T]) Unauthorized() bool { return r.Status == 401 }

// MessageOr returns the backend message, or fallback when a rejection
// carried none.
func (r Result[T]) MessageOr(fallback string) string {
	if r.Message == "" {
		return fallback
	}
	return r.Message
}
