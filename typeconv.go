package ubj

// conversion helpers in between decoded UBJSON values and plain Go types.

import (
	"fmt"
	"strconv"
)

// AsInt64 tries to represent a decoded value as int64.
//
// UBJSON ints decode directly as int64; AsInt64 also accepts a Huge
// whose canonical decimal string happens to fit int64, the same way a
// host might accept either representation of "a number" without caring
// which wire width produced it.
func AsInt64(x any) (int64, error) {
	switch x := x.(type) {
	case int64:
		return x, nil
	case Huge:
		v, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("huge %q does not fit int64", string(x))
		}
		return v, nil
	}
	return 0, fmt.Errorf("expect int64|Huge; got %T", x)
}

// AsBytes tries to represent a decoded value as Bytes.
//
// It succeeds if the value is already Bytes, or is any string (decoding
// never yields Bytes, so a byte string comes back as a string; spec.md
// §9). The draft the string was decoded under is not checked.
func AsBytes(x any) (Bytes, error) {
	switch x := x.(type) {
	case Bytes:
		return x, nil
	case string:
		return Bytes(x), nil
	}
	return "", fmt.Errorf("expect Bytes|string; got %T", x)
}

// AsString tries to represent a decoded value as string.
//
// It succeeds for string and for Huge, treating Huge's canonical
// decimal text as its own string form.
func AsString(x any) (string, error) {
	switch x := x.(type) {
	case string:
		return x, nil
	case Huge:
		return string(x), nil
	}
	return "", fmt.Errorf("expect string|Huge; got %T", x)
}

// stringEQ compares arbitrary x to string y.
//
// It succeeds only if AsString(x) succeeds and its text equals y.
func stringEQ(x any, y string) bool {
	s, err := AsString(x)
	if err != nil {
		return false
	}
	return s == y
}
