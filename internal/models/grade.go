package models

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
)

// Grade is the user's assessment of a card review.
type Grade int

const (
	GradeAgain Grade = iota + 1 // failed recall; card drops back to box 1
	GradeGood                   // recalled; advance one box
	GradeEasy                   // recalled effortlessly; advance two boxes
)

// ErrInvalidGrade is returned when a grade outside {again, good, easy}
// is parsed or marshaled. Check with errors.Is.
var ErrInvalidGrade = errors.New("review: invalid grade")

var (
	gradeNames  = [...]string{GradeAgain: "again", GradeGood: "good", GradeEasy: "easy"}
	gradeByName = map[string]Grade{
		"again": GradeAgain,
		"good":  GradeGood,
		"easy":  GradeEasy,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Grade(0)
	_ json.Marshaler           = Grade(0)
	_ json.Unmarshaler         = (*Grade)(nil)
	_ encoding.TextMarshaler   = Grade(0)
	_ encoding.TextUnmarshaler = (*Grade)(nil)
)

// String returns the wire name of the grade ("again", "good", "easy").
// For invalid values it returns "Grade(n)".
func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// IsValid reports whether g is one of the three known grades.
func (g Grade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// IsSuccess reports whether the grade counts toward successCount.
func (g Grade) IsSuccess() bool {
	return g == GradeGood || g == GradeEasy
}

// ParseGrade converts a wire name into a Grade.
func ParseGrade(s string) (Grade, error) {
	g, ok := gradeByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
	}
	return g, nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grade) UnmarshalText(text []byte) error {
	v, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// MarshalJSON implements json.Marshaler. Grade serializes as a JSON string.
func (g Grade) MarshalJSON() ([]byte, error) {
	text, err := g.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	return g.UnmarshalText([]byte(s))
}
