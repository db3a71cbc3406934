package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindKeyword    ErrKind = iota // malformed keyword (charset, HIERARCH spacing)
	ErrKindCard                      // malformed card (indicator, value token)
	ErrKindConversion                // requested type incompatible or lossy narrowing
	ErrKindUniqueness                // second occurrence of a non-commentary keyword
	ErrKindBounds                    // position outside the legal range
	ErrKindNotFound                  // missing keyword/card
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so wrapped errors compare
// against the sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrMalformedKeyword indicates invalid characters, ambiguous HIERARCH
	// spacing, or multiple interior spaces in a keyword.
	ErrMalformedKeyword = &Error{Kind: ErrKindKeyword, Msg: "malformed keyword"}
	// ErrMalformedCard indicates a missing value indicator or an invalid
	// value token for the detected grammar.
	ErrMalformedCard = &Error{Kind: ErrKindCard, Msg: "malformed card"}
	// ErrConversion indicates an incompatible or information-losing value
	// conversion.
	ErrConversion = &Error{Kind: ErrKindConversion, Msg: "value conversion failed"}
	// ErrUniqueness indicates an edit that would duplicate a
	// non-commentary keyword.
	ErrUniqueness = &Error{Kind: ErrKindUniqueness, Msg: "duplicate non-commentary keyword"}
	// ErrBounds indicates positional access outside the legal range.
	ErrBounds = &Error{Kind: ErrKindBounds, Msg: "position out of range"}
	// ErrNotFound indicates a missing keyword or card.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
)

// -----------------------------------------------------------------------------
// Card types
// -----------------------------------------------------------------------------

// CardType enumerates the closed set of FITS card value types. Every
// consumption site switches exhaustively over these.
type CardType int

const (
	TypeUndefined CardType = iota // value field present but blank
	TypeLogical                   // 'T' or 'F'
	TypeInteger                   // signed 64-bit integer
	TypeFloat                     // double-precision real
	TypeComplex                   // double-precision complex pair
	TypeString                    // quoted string
	TypeComment                   // commentary card, no value
	TypeEnd                       // END sentinel
)

// String implements the Stringer interface for CardType.
func (t CardType) String() string {
	switch t {
	case TypeUndefined:
		return "UNDEFINED"
	case TypeLogical:
		return "LOGICAL"
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeComplex:
		return "COMPLEX"
	case TypeString:
		return "STRING"
	case TypeComment:
		return "COMMENT"
	case TypeEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// IsAssigned reports whether a card of this type carries a usable value.
func (t CardType) IsAssigned() bool {
	switch t {
	case TypeLogical, TypeInteger, TypeFloat, TypeComplex, TypeString:
		return true
	case TypeUndefined, TypeComment, TypeEnd:
		return false
	default:
		return false
	}
}

// Undefined is the explicit "value present but undefined" marker used
// when building cards. Passing Undefined{} as a value yields a card of
// TypeUndefined; passing nil yields a commentary card.
type Undefined struct{}
