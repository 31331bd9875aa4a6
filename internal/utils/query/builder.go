// Package query builds the gorm filter scopes shared by the submission and
// evidence repositories. User text is always regex-escaped before it reaches
// a postgres `~*` (case-insensitive regex) comparison.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"speed_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionTextVector is the full-text document indexed over submissions.
const SubmissionTextVector = "to_tsvector('english', " +
	"coalesce(title, '') || ' ' || coalesce(author_raw, '') || ' ' || coalesce(authors::text, '') || ' ' || " +
	"coalesce(journal, '') || ' ' || coalesce(booktitle, '') || ' ' || coalesce(abstract, '') || ' ' || " +
	"coalesce(extracted_text, ''))"

type Scope = func(*gorm.DB) *gorm.DB

// EscapeRegex quotes every regex metacharacter in s.
func EscapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// ExactPattern matches s in full, case-insensitively when used with `~*`.
func ExactPattern(s string) string {
	return "^" + EscapeRegex(s) + "$"
}

// YearFromQuery reports whether a free-text query reads as a publication year.
func YearFromQuery(q string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// AuthorMatch tests the pattern against each author name on its own, never
// against the serialized array.
const AuthorMatch = "EXISTS (SELECT 1 FROM jsonb_array_elements_text(authors) AS a WHERE a ~* ?)"

// SubmissionSearch matches q as a literal substring of title, any one author,
// journal or doi, or as the year when q is numeric.
func SubmissionSearch(q string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		pattern := EscapeRegex(q)
		cond := "title ~* ? OR " + AuthorMatch + " OR journal ~* ? OR doi ~* ?"
		args := []interface{}{pattern, pattern, pattern, pattern}
		if year, ok := YearFromQuery(q); ok {
			cond += " OR year = ?"
			args = append(args, year)
		}
		return db.Where(cond, args...)
	}
}

func WithStatus(status models.SubmissionStatus) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

func SubmittedBy(submitterID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("submitter_id = ?", submitterID)
	}
}

// AcceptedExcluding restricts to the accepted corpus minus one submission.
func AcceptedExcluding(excludeID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND id <> ?", models.StatusAccepted, excludeID)
	}
}

// DOIEquals matches a stored doi equal to doi ignoring case. doi is expected
// to be trimmed and lowercased already.
func DOIEquals(doi string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("doi ~* ?", ExactPattern(doi))
	}
}

func HasTitle() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("title IS NOT NULL AND title <> ''")
	}
}

func NewestFirst() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}

func OldestFirst() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC").Order("id ASC")
	}
}

func Paginate(p Page) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// EvidenceFilter carries the evidence search criteria.
type EvidenceFilter struct {
	SEPractice string
	Keywords   string
}

func (f EvidenceFilter) Normalized() EvidenceFilter {
	return EvidenceFilter{
		SEPractice: strings.TrimSpace(f.SEPractice),
		Keywords:   strings.TrimSpace(f.Keywords),
	}
}

// Empty reports whether there is nothing to search for.
func (f EvidenceFilter) Empty() bool {
	n := f.Normalized()
	return n.SEPractice == "" && n.Keywords == ""
}

// EvidenceSearch ANDs an exact practice match with a keyword condition. The
// keyword condition ORs substring matches on the entry's own text with
// membership of its submission in a full-text match over submissions.
func EvidenceSearch(f EvidenceFilter) Scope {
	f = f.Normalized()
	return func(db *gorm.DB) *gorm.DB {
		if f.SEPractice != "" {
			db = db.Where("se_practice ~* ?", ExactPattern(f.SEPractice))
		}
		if f.Keywords != "" {
			pattern := EscapeRegex(f.Keywords)
			matching := db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Submission{}).
				Select("id").
				Where(SubmissionTextVector+" @@ plainto_tsquery('english', ?)", f.Keywords)
			db = db.Where("se_practice ~* ? OR claim ~* ? OR analyst_notes ~* ? OR submission_id IN (?)",
				pattern, pattern, pattern, matching)
		}
		return db
	}
}
