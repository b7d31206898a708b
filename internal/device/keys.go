package device

import (
	"errors"
	"strings"
)

// Key is a decoded remote-control command.
type Key int

const (
	KeyOK Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyStar
	KeyHash
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
)

var ErrUnknownKey = errors.New("unknown remote key")

var keyNames = map[Key]string{
	KeyOK:     "OK",
	KeyLeft:   "LEFT",
	KeyRight:  "RIGHT",
	KeyUp:     "UP",
	KeyDown:   "DOWN",
	KeyStar:   "STAR",
	KeyHash:   "HASH",
	KeyDigit0: "0",
	KeyDigit1: "1",
	KeyDigit2: "2",
	KeyDigit3: "3",
	KeyDigit4: "4",
	KeyDigit5: "5",
	KeyDigit6: "6",
	KeyDigit7: "7",
	KeyDigit8: "8",
	KeyDigit9: "9",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Digit reports the numeric value of a digit key.
func (k Key) Digit() (uint32, bool) {
	if k < KeyDigit0 || k > KeyDigit9 {
		return 0, false
	}
	return uint32(k - KeyDigit0), true
}

// ParseKey accepts the names produced by String, case-insensitive.
// "DIEZ" and "#" are accepted for HASH, "*" for STAR, "N0".."N9" and "DIGIT_0".."DIGIT_9" for digits.
func ParseKey(s string) (Key, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "DIEZ", "#":
		return KeyHash, nil
	case "*":
		return KeyStar, nil
	}
	name = strings.TrimPrefix(name, "DIGIT_")
	if len(name) == 2 && name[0] == 'N' {
		name = name[1:]
	}
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return 0, ErrUnknownKey
}
