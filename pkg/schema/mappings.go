package schema

import (
	"strings"
	"unicode"
)

// Candidate lists, most specific alias first.
var (
	RoomCodeCandidates = []string{"Code"}
	RoomNameCandidates = []string{"Notes"}
	CapacityCandidates = []string{"Size"}

	TeacherCodeCandidates = []string{"Code"}
	NameCandidates        = []string{"Name"}
	FacultyCandidates     = []string{"Faculty"}

	StudentCodeCandidates    = []string{"Code"}
	CoreBodyCandidates       = []string{"Letter", "CoreStudentBodyCode"}
	EmailCandidates          = []string{"Email", "E-mail", "Email Address"}
	MembershipCodeCandidates = []string{"Code", "StudentCode"}

	CourseCodeCandidates  = []string{"Course", "CourseCode", "Course Code"}
	CourseNameCandidates  = []string{"Subject", "CourseName", "Course Name"}
	SubjectCodeCandidates = []string{"Faculty", "SubjectCode", "Subject Code"}
	CourseRotCandidates   = []string{"Rot", "Rotation", "RotationSet", "Rotation Set"}
	LineCandidates        = []string{"Line", "Type"}

	DayCandidates          = []string{"Day", "DAY", "day", "DayName"}
	PeriodCandidates       = []string{"Period", "PERIOD", "period", "Per"}
	ClassCandidates        = []string{"Class", "ClassCode", "Class Code", "ClassIdentifier", "Class Identifier"}
	ClassTeacherCandidates = []string{"TeacherCode", "Teacher Code", "Teacher", "StaffCode", "Staff Code", "Staff"}
	ClassRoomCandidates    = []string{"RoomCode", "Room Code", "Room", "Rm", "RM"}
	ClassRotCandidates     = []string{"Rotation", "Rot", "RotationSet", "Rotation Set"}
)

// Tier is one precedence level of column resolution. It returns the matched
// column name, or false when the tier has no opinion.
type Tier interface {
	Match(columns, candidates []string) (string, bool)
}

// TierFunc allows functions to implement Tier.
type TierFunc func(columns, candidates []string) (string, bool)

// Match implements the Tier interface.
func (f TierFunc) Match(columns, candidates []string) (string, bool) {
	return f(columns, candidates)
}

// Resolver walks its tiers in order and returns the first match.
type Resolver struct {
	Tiers []Tier
}

// DefaultResolver resolves columns with the standard four tiers:
//  1. exact, case-sensitive name
//  2. case-insensitive name
//  3. normalized candidate contained in a normalized column, candidate order
//  4. any normalized candidate contained in a normalized column, column order
var DefaultResolver = &Resolver{
	Tiers: []Tier{
		TierFunc(exactMatch),
		TierFunc(foldMatch),
		TierFunc(containsMatch),
		TierFunc(reverseContainsMatch),
	},
}

// Resolve returns the column of t that best matches candidates, or "" when
// nothing matches. Empty tables never match.
func (r *Resolver) Resolve(t *Table, candidates []string) string {
	if t.Empty() {
		return ""
	}
	for _, tier := range r.Tiers {
		if col, ok := tier.Match(t.Columns, candidates); ok {
			return col
		}
	}
	return ""
}

// Resolve uses DefaultResolver.
func Resolve(t *Table, candidates []string) string {
	return DefaultResolver.Resolve(t, candidates)
}

func exactMatch(columns, candidates []string) (string, bool) {
	for _, c := range candidates {
		for _, col := range columns {
			if col == c {
				return col, true
			}
		}
	}
	return "", false
}

// foldMatch compares lower-cased names. When several columns fold to the
// same key the last one wins.
func foldMatch(columns, candidates []string) (string, bool) {
	lower := make(map[string]string, len(columns))
	for _, col := range columns {
		lower[strings.ToLower(col)] = col
	}
	for _, c := range candidates {
		if col, ok := lower[strings.ToLower(c)]; ok {
			return col, true
		}
	}
	return "", false
}

// containsMatch tries each candidate against every normalized column. Columns
// that normalize to the same key collapse onto the last of them.
func containsMatch(columns, candidates []string) (string, bool) {
	var keys []string
	byKey := make(map[string]string, len(columns))
	for _, col := range columns {
		k := NormalizeHeader(col)
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = col
	}
	for _, c := range candidates {
		ck := NormalizeHeader(c)
		if ck == "" {
			continue
		}
		for _, k := range keys {
			if strings.Contains(k, ck) {
				return byKey[k], true
			}
		}
	}
	return "", false
}

func reverseContainsMatch(columns, candidates []string) (string, bool) {
	for _, col := range columns {
		n := NormalizeHeader(col)
		for _, c := range candidates {
			ck := NormalizeHeader(c)
			if ck != "" && strings.Contains(n, ck) {
				return col, true
			}
		}
	}
	return "", false
}

// NormalizeHeader lowercases a header and strips everything that is not a
// letter or digit.
func NormalizeHeader(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range strings.ToLower(header) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
