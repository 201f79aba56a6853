package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TagList is the normalized form of a facet field. Upstream catalog data stores
// facets in two physical shapes: a JSON array of strings, or a single scalar
// string that may be comma-joined ("Loop, 30s Edit"). Both shapes decode into a
// flat list of trimmed tags; a JSON null decodes into an empty list. Downstream
// code never branches on shape again.
type TagList []string

// UnmarshalJSON accepts an array of strings, a scalar string, or null.
func (t *TagList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*t = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = cleanTags(arr)
		return nil
	}

	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*t = cleanTags(strings.Split(scalar, ","))
		return nil
	}

	return fmt.Errorf("tag list must be a string, an array of strings, or null, got: %s", trimmed)
}

// Scan implements sql.Scanner so facet columns (JSON in MySQL) decode through
// the same dual-shape normalization as API payloads.
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tag list column type %T", value)
	}

	if len(raw) == 0 {
		*t = nil
		return nil
	}
	if err := t.UnmarshalJSON(raw); err != nil {
		// Legacy rows store the bare comma-joined string without JSON quoting.
		*t = cleanTags(strings.Split(string(raw), ","))
	}
	return nil
}

// Value implements driver.Valuer, always writing the array shape.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal([]string(t))
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeTag folds a tag for matching. Display keeps the original casing;
// every comparison goes through this.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalized returns the case-folded tag set used for matching.
func (t TagList) Normalized() []string {
	out := make([]string, 0, len(t))
	for _, tag := range t {
		out = append(out, NormalizeTag(tag))
	}
	return out
}

// Intersects reports whether any selected value matches any tag, post-fold.
func (t TagList) Intersects(selected []string) bool {
	if len(t) == 0 || len(selected) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(t))
	for _, tag := range t {
		set[NormalizeTag(tag)] = struct{}{}
	}
	for _, sel := range selected {
		if _, ok := set[NormalizeTag(sel)]; ok {
			return true
		}
	}
	return false
}

// Overlap counts distinct tags present in both lists, post-fold.
func (t TagList) Overlap(other TagList) int {
	if len(t) == 0 || len(other) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(t))
	for _, tag := range t {
		set[NormalizeTag(tag)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(other))
	count := 0
	for _, tag := range other {
		folded := NormalizeTag(tag)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		if _, ok := set[folded]; ok {
			count++
		}
	}
	return count
}

// ContainsSubstring reports whether any tag contains sub, case-insensitively.
func (t TagList) ContainsSubstring(sub string) bool {
	sub = NormalizeTag(sub)
	for _, tag := range t {
		if strings.Contains(NormalizeTag(tag), sub) {
			return true
		}
	}
	return false
}

// First returns up to n leading tags, preserving order.
func (t TagList) First(n int) []string {
	if n > len(t) {
		n = len(t)
	}
	out := make([]string, n)
	copy(out, t[:n])
	return out
}

// Credit is one entry of a track's structured credits.
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CreditList is an ordered sequence of credits, stored as a JSON column.
type CreditList []Credit

// Scan implements sql.Scanner.
func (c *CreditList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported credits column type %T", value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*c = nil
		return nil
	}
	return json.Unmarshal(raw, c)
}

// Value implements driver.Valuer.
func (c CreditList) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal([]Credit(c))
}

// Serialized renders credits the way the search haystack expects them.
func (c CreditList) Serialized() string {
	parts := make([]string, 0, len(c))
	for _, credit := range c {
		parts = append(parts, credit.Name+" "+credit.Role)
	}
	return strings.Join(parts, " ")
}

// Track represents one catalog entity of the storefront.
type Track struct {
	ID      int64  `json:"id" gorm:"primaryKey;column:id"`
	Title   string `json:"title" gorm:"column:title"`
	Artist  string `json:"artist" gorm:"column:artist"`
	AlbumID *int64 `json:"albumId,omitempty" gorm:"column:album_id"`

	Genre      TagList `json:"genre" gorm:"column:genre"`
	Mood       TagList `json:"mood" gorm:"column:mood"`
	Instrument TagList `json:"instrument" gorm:"column:instrument"`
	Season     TagList `json:"season" gorm:"column:season"`
	MediaTheme TagList `json:"mediaTheme" gorm:"column:media_theme"`
	Keywords   TagList `json:"keywords" gorm:"column:keywords"`

	// EditCuts lists bundled alternate versions (loop, stinger, timed cuts).
	EditCuts TagList `json:"editCuts" gorm:"column:edit_cuts"`

	BPM         *int    `json:"bpm,omitempty" gorm:"column:bpm"`
	Duration    float32 `json:"duration" gorm:"column:duration"` // seconds
	ReleaseYear *int    `json:"releaseYear,omitempty" gorm:"column:release_year"`

	Lyrics  sql.NullString `json:"-" gorm:"column:lyrics"`
	Credits CreditList     `json:"credits,omitempty" gorm:"column:credits"`

	// License variant identifiers used to build checkout links.
	StandardVariantID     string `json:"standardVariantId" gorm:"column:standard_variant_id"`
	ExtendedVariantID     string `json:"extendedVariantId" gorm:"column:extended_variant_id"`
	SubscriptionVariantID string `json:"subscriptionVariantId" gorm:"column:subscription_variant_id"`

	// Object keys in the downloads bucket.
	PreviewKey  string `json:"-" gorm:"column:preview_key"`
	DownloadKey string `json:"-" gorm:"column:download_key"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName maps Track onto the catalog table for GORM readers.
func (Track) TableName() string {
	return "squeeze_tracks"
}

// Year returns the release year with a missing year treated as 0.
func (t *Track) Year() int {
	if t.ReleaseYear == nil {
		return 0
	}
	return *t.ReleaseYear
}

// SearchHaystack is the lowercased concatenation text search runs against:
// title, artist and the serialized forms of credits, keywords, genre, mood,
// instrument and media theme.
func (t *Track) SearchHaystack() string {
	parts := []string{
		t.Title,
		t.Artist,
		t.Credits.Serialized(),
		strings.Join(t.Keywords, " "),
		strings.Join(t.Genre, " "),
		strings.Join(t.Mood, " "),
		strings.Join(t.Instrument, " "),
		strings.Join(t.MediaTheme, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}
