package model

import (
	"bytes"
	"strings"
)

// TriBool is a boolean with an explicit "unknown" state for tokens the
// source document never provided or that could not be recognized.
type TriBool int

const (
	Unknown TriBool = iota
	False
	True
)

// ParseTriBool normalizes a boolean-like document token. Recognized true
// tokens are YES, Y, 1 and TRUE; recognized false tokens are NO, N, 0 and
// FALSE (case-insensitive). Every other token, including the empty string,
// is Unknown.
func ParseTriBool(token string) TriBool {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "YES", "Y", "1", "TRUE":
		return True
	case "NO", "N", "0", "FALSE":
		return False
	}
	return Unknown
}

// Bool reports the value as a plain bool, treating Unknown as false.
func (t TriBool) Bool() bool { return t == True }

// Known reports whether the value is True or False.
func (t TriBool) Known() bool { return t != Unknown }

func (t TriBool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

var jsonNull = []byte("null")

// MarshalJSON encodes True and False as JSON booleans and Unknown as null,
// matching the downstream result format.
func (t TriBool) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	}
	return jsonNull, nil
}

// UnmarshalJSON decodes a JSON boolean or null into a TriBool.
func (t *TriBool) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = True
	case bytes.Equal(data, []byte("false")):
		*t = False
	default:
		*t = Unknown
	}
	return nil
}
