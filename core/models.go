package core

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Plot types recognized in queries and stored on records.
const (
	PlotTypeFamily    = "family"
	PlotTypeSingle    = "single"
	PlotTypeLawn      = "lawn"
	PlotTypeMausoleum = "mausoleum"
)

// Record is a single burial: one deceased person interred in one plot.
// Dates are stored at day precision in UTC; a zero time means the date is unknown.
type Record struct {
	Id           ID
	PlotId       ID
	FirstName    string
	MiddleName   string
	LastName     string
	DateOfBirth  time.Time
	DateOfDeath  time.Time
	PlotNumber   string
	PlotType     string
	CemeteryId   ID
	CemeteryName string
	Vector       []float32 // Embedding of SearchText (populated by processors)
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// FullName returns "first last", skipping empty parts.
func (r *Record) FullName() string {
	return joinNonEmpty(r.FirstName, r.LastName)
}

// DisplayName returns "first middle last", skipping empty parts.
func (r *Record) DisplayName() string {
	return joinNonEmpty(r.FirstName, r.MiddleName, r.LastName)
}

// DeathYear returns the year of death or 0 when unknown.
func (r *Record) DeathYear() int {
	if r.DateOfDeath.IsZero() {
		return 0
	}
	return r.DateOfDeath.Year()
}

// BirthYear returns the year of birth or 0 when unknown.
func (r *Record) BirthYear() int {
	if r.DateOfBirth.IsZero() {
		return 0
	}
	return r.DateOfBirth.Year()
}

// AgeAtDeath returns the difference between death and birth years.
// The second return value is false when either date is unknown.
func (r *Record) AgeAtDeath() (int, bool) {
	if r.DateOfBirth.IsZero() || r.DateOfDeath.IsZero() {
		return 0, false
	}
	return r.DeathYear() - r.BirthYear(), true
}

// SearchText synthesizes the free-text representation of a record used for
// textual and embedding similarity: "first last plot cemetery deathYear birthYear".
func (r *Record) SearchText() string {
	parts := []string{strings.ToLower(r.FullName()), r.PlotNumber, r.CemeteryName}
	if y := r.DeathYear(); y != 0 {
		parts = append(parts, strconv.Itoa(y))
	}
	if y := r.BirthYear(); y != 0 {
		parts = append(parts, strconv.Itoa(y))
	}
	return joinNonEmpty(parts...)
}

// Fingerprint identifies a burial by content, independent of its assigned Id.
// Two imports of the same person in the same plot produce the same fingerprint.
func (r *Record) Fingerprint() ID {
	var b strings.Builder
	for _, s := range []string{r.FirstName, r.MiddleName, r.LastName, r.PlotNumber, r.CemeteryName} {
		b.WriteString(strings.ToLower(strings.TrimSpace(s)))
		b.WriteByte('|')
	}
	b.WriteString(dateKey(r.DateOfBirth))
	b.WriteByte('|')
	b.WriteString(dateKey(r.DateOfDeath))
	return IDFromContent(b.String())
}

// PersonName is the name-only projection of a Record used for suggestions
// and autocomplete.
type PersonName struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// Full returns "first last".
func (n PersonName) Full() string {
	return joinNonEmpty(n.FirstName, n.LastName)
}

// Cemetery is a distinct cemetery referenced by stored records.
type Cemetery struct {
	Id      ID
	Name    string
	Burials int
}

// Date builds a UTC calendar date. It reports false when the components do
// not form a real date (e.g. February 31st).
func Date(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
