package schemas

import "strconv"

// -- Wire Schemas --
//
// Every exchange with the driver is a flat JSON object. Requests carry an
// "action" field naming the command plus command-specific parameters; responses
// are either a result bag or an error bag. Values are limited to what JSON can
// carry: strings, numbers, booleans, nil, arrays and nested objects.

// Bag is a single command, result or error payload.
type Bag map[string]any

// ErrorKind is the machine readable discriminator of an error bag.
type ErrorKind string

const (
	ErrInvalidWidgetPath      ErrorKind = "InvalidWidgetPath"
	ErrNotRegisteredObject    ErrorKind = "NotRegisteredObject"
	ErrNotAWidget             ErrorKind = "NotAWidget"
	ErrNoWindowForQuickItem   ErrorKind = "NoWindowForQuickItem"
	ErrNoActiveWindow         ErrorKind = "NoActiveWindow"
	ErrInvalidQuickItem       ErrorKind = "InvalidQuickItem"
	ErrInvalidDirection       ErrorKind = "InvalidDirection"
	ErrMissingModel           ErrorKind = "MissingModel"
	ErrNotAModel              ErrorKind = "NotAModel"
	ErrMissingModelItem       ErrorKind = "MissingModelItem"
	ErrMissingItemAction      ErrorKind = "MissingItemAction"
	ErrMissingGItem           ErrorKind = "MissingGItem"
	ErrGItemNotObject         ErrorKind = "GItemNotObject"
	ErrInvalidHeaderView      ErrorKind = "InvalidHeaderView"
	ErrInvalidHeaderViewIndex ErrorKind = "InvalidHeaderViewIndex"
	ErrMissingHeaderViewText  ErrorKind = "MissingHeaderViewText"
	ErrNoMethodInvoked        ErrorKind = "NoMethodInvoked"
	ErrFeatureUnavailable     ErrorKind = "FeatureUnavailable"
	ErrInvalidCommand         ErrorKind = "InvalidCommand"
)

// Error builds the uniform error bag returned by every failing handler.
func Error(kind ErrorKind, message string) Bag {
	return Bag{"kind": string(kind), "message": message}
}

// IsError reports whether a bag is an error bag.
func (b Bag) IsError() bool {
	_, ok := b["kind"]
	return ok
}

// Kind returns the error kind of an error bag, or "" for a result bag.
func (b Bag) Kind() ErrorKind {
	s, _ := b["kind"].(string)
	return ErrorKind(s)
}

// Has reports whether the key is present, regardless of its value.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// String returns the value under key coerced to a string ("" when absent or
// not a string).
func (b Bag) String(key string) string {
	s, _ := b[key].(string)
	return s
}

// Bool returns the value under key as a bool (false when absent).
func (b Bag) Bool(key string) bool {
	v, _ := b[key].(bool)
	return v
}

// Int returns the value under key as an int. Depending on the decoder,
// numbers arrive as float64 or json.Number; all forms are accepted.
func (b Bag) Int(key string) int {
	switch v := b[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case interface{ String() string }: // json.Number
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Uint64 returns the value under key as an object handle. Handles above 2^53
// do not survive a float64 round trip, so the codec keeps large numbers as
// json.Number strings; both are accepted here.
func (b Bag) Uint64(key string) uint64 {
	switch v := b[key].(type) {
	case uint64:
		return v
	case int:
		return uint64(v)
	case int64:
		return uint64(v)
	case float64:
		return uint64(v)
	case string:
		return parseUint(v)
	case interface{ String() string }: // json.Number
		return parseUint(v.String())
	}
	return 0
}

// Sub returns a nested object value as a Bag (nil when absent or scalar).
func (b Bag) Sub(key string) Bag {
	switch v := b[key].(type) {
	case Bag:
		return v
	case map[string]any:
		return Bag(v)
	}
	return nil
}

func parseUint(s string) uint64 {
	var n uint64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + uint64(r-'0')
	}
	return n
}
