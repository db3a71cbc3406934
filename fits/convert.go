package fits

import (
	"fmt"
	"math"

	"github.com/joshuapare/fitskit/pkg/types"
)

// Typed accessors with checked numeric promotion. The promotion chain
// LOGICAL -> INTEGER -> FLOAT -> COMPLEX is always exact; narrowing in
// the other direction fails whenever it would discard information
// (non-zero imaginary part, non-integral float, overflow). Requesting a
// type incompatible with the card's type always fails, and COMMENT, END,
// and UNDEFINED cards have no convertible value at all.

// Value returns the payload in its native representation: bool, int64,
// float64, complex128, or string. UNDEFINED cards return
// types.Undefined{}; COMMENT and END cards return nil.
func (c Card) Value() any {
	switch c.typ {
	case types.TypeLogical:
		return c.bval
	case types.TypeInteger:
		return c.ival
	case types.TypeFloat:
		return real(c.cval)
	case types.TypeComplex:
		return c.cval
	case types.TypeString:
		return c.sval
	case types.TypeUndefined:
		return types.Undefined{}
	case types.TypeComment, types.TypeEnd:
		return nil
	default:
		return nil
	}
}

// Logical returns the value as a bool. Numeric cards narrow only when
// the value is exactly 0 or 1.
func (c Card) Logical() (bool, error) {
	switch c.typ {
	case types.TypeLogical:
		return c.bval, nil
	case types.TypeInteger:
		switch c.ival {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case types.TypeFloat, types.TypeComplex:
		if imag(c.cval) == 0 {
			switch real(c.cval) {
			case 0:
				return false, nil
			case 1:
				return true, nil
			}
		}
	}
	return false, c.conversionErr("logical")
}

// Integer returns the value as an int64. Floats narrow only when
// integral and exactly representable; complex values additionally
// require a zero imaginary part.
func (c Card) Integer() (int64, error) {
	switch c.typ {
	case types.TypeLogical:
		if c.bval {
			return 1, nil
		}
		return 0, nil
	case types.TypeInteger:
		return c.ival, nil
	case types.TypeFloat, types.TypeComplex:
		if imag(c.cval) != 0 {
			break
		}
		v := real(c.cval)
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			break
		}
		i := int64(v)
		if float64(i) == v {
			return i, nil
		}
	}
	return 0, c.conversionErr("integer")
}

// Float returns the value as a float64. Complex values narrow only when
// the imaginary part is zero.
func (c Card) Float() (float64, error) {
	switch c.typ {
	case types.TypeLogical:
		if c.bval {
			return 1, nil
		}
		return 0, nil
	case types.TypeInteger:
		return float64(c.ival), nil
	case types.TypeFloat:
		return real(c.cval), nil
	case types.TypeComplex:
		if imag(c.cval) == 0 {
			return real(c.cval), nil
		}
	}
	return 0, c.conversionErr("float")
}

// Complex returns the value as a complex128. All numeric promotions to
// complex are exact.
func (c Card) Complex() (complex128, error) {
	switch c.typ {
	case types.TypeLogical:
		if c.bval {
			return 1, nil
		}
		return 0, nil
	case types.TypeInteger:
		return complex(float64(c.ival), 0), nil
	case types.TypeFloat, types.TypeComplex:
		return c.cval, nil
	}
	return 0, c.conversionErr("complex")
}

// Text returns the value of a STRING card. Numeric and sentinel cards
// never convert to text.
func (c Card) Text() (string, error) {
	if c.typ == types.TypeString {
		return c.sval, nil
	}
	return "", c.conversionErr("string")
}

func (c Card) conversionErr(want string) error {
	return &types.Error{
		Kind: types.ErrKindConversion,
		Msg:  fmt.Sprintf("cannot convert %s card %q to %s", c.typ, c.name, want),
	}
}

// IsAssigned reports whether the card carries a usable value, i.e. its
// type is none of COMMENT, UNDEFINED, END.
func (c Card) IsAssigned() bool { return c.typ.IsAssigned() }

// IsInteger reports whether the card's value is integer-valued by type:
// INTEGER or LOGICAL.
func (c Card) IsInteger() bool {
	return c.typ == types.TypeInteger || c.typ == types.TypeLogical
}

// IsReal reports whether the card's value is real-valued: FLOAT,
// INTEGER, LOGICAL, or a COMPLEX with zero imaginary part.
func (c Card) IsReal() bool {
	switch c.typ {
	case types.TypeFloat, types.TypeInteger, types.TypeLogical:
		return true
	case types.TypeComplex:
		return imag(c.cval) == 0
	}
	return false
}

// IsCommentary reports whether the card is commentary: COMMENT, HISTORY,
// and blank-keyword cards, and HIERARCH cards of comment type.
func (c Card) IsCommentary() bool { return c.typ == types.TypeComment }

// ValueEquals compares the card's value against a plain value by
// converting the card side to the operand's type. The comparison is
// symmetric: a failed conversion simply compares unequal.
func (c Card) ValueEquals(v any) bool {
	switch want := v.(type) {
	case nil:
		return c.typ == types.TypeComment || c.typ == types.TypeEnd
	case types.Undefined:
		return c.typ == types.TypeUndefined
	case bool:
		got, err := c.Logical()
		return err == nil && got == want
	case int:
		got, err := c.Integer()
		return err == nil && got == int64(want)
	case int64:
		got, err := c.Integer()
		return err == nil && got == want
	case float64:
		got, err := c.Float()
		return err == nil && got == want
	case complex128:
		got, err := c.Complex()
		return err == nil && got == want
	case string:
		got, err := c.Text()
		return err == nil && got == want
	case Card:
		return c.equalValue(want)
	}
	return false
}

// equalValue compares two cards' values by promoting both to the wider
// of the two types.
func (c Card) equalValue(o Card) bool {
	if !c.typ.IsAssigned() || !o.typ.IsAssigned() {
		return c.typ == o.typ
	}
	if c.typ == types.TypeString || o.typ == types.TypeString {
		a, aerr := c.Text()
		b, berr := o.Text()
		return aerr == nil && berr == nil && a == b
	}
	a, aerr := c.Complex()
	b, berr := o.Complex()
	return aerr == nil && berr == nil && a == b
}

// Equal reports whether two cards are indistinguishable: same key, type,
// name, comment, and payload. Unlike ValueEquals it does not promote
// numeric types.
func (c Card) Equal(o Card) bool {
	if c.key != o.key || c.typ != o.typ || c.name != o.name || c.comment != o.comment {
		return false
	}
	switch c.typ {
	case types.TypeLogical:
		return c.bval == o.bval
	case types.TypeInteger:
		return c.ival == o.ival
	case types.TypeFloat:
		return real(c.cval) == real(o.cval)
	case types.TypeComplex:
		return c.cval == o.cval
	case types.TypeString:
		return c.sval == o.sval
	case types.TypeUndefined, types.TypeComment, types.TypeEnd:
		return true
	default:
		return false
	}
}
