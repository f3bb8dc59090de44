// Package envelope assembles report server request envelopes from named SQL
// templates and typed placeholder substitutions.
package envelope

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
)

// sqlTimestampFormat is how dates are embedded into query text; the report
// server compares them against its UTC-stored timestamps.
const sqlTimestampFormat = "2006-01-02 15:04:05"

// rawValuePattern is the charset allowed for Raw substitution values: dates,
// numbers and identifiers. Anything beyond it must go through Text.
var rawValuePattern = regexp.MustCompile(`^[0-9A-Za-z_.: -]*$`)

// Value is one placeholder substitution. Raw values (dates, numbers,
// identifiers) are validated against a safe charset; Text values are
// caller-supplied free text destined for a single-quoted SQL literal and are
// rejected outright when they contain the quote delimiter. The remote server
// owns the SQL dialect, so rejecting beats guessing at its escaping rules.
type Value struct {
	text string
	raw  bool
}

// Raw wraps a date, number or identifier substitution.
func Raw(s string) Value { return Value{text: s, raw: true} }

// Text wraps a free-text substitution (search terms, names).
func Text(s string) Value { return Value{text: s} }

// Date wraps a timestamp substitution in the report server's format.
func Date(t time.Time) Value { return Raw(t.Format(sqlTimestampFormat)) }

// Int wraps an integer substitution.
func Int(n int) Value { return Raw(strconv.Itoa(n)) }

// Substitutions maps placeholder names (START_DATE, TIMEOFFSET, …) to their
// values.
type Substitutions map[string]Value

// Build substitutes placeholders into every block's SQL text and wraps the
// result into an envelope for the given tenant. Substitution operates on the
// raw SQL text and therefore happens before tenant identity is attached; the
// Id/Pass fields are rendered last by Envelope.MarshalJSON, so no block ever
// needs (or can override) tenant identity.
func Build(tenantID, tenantPass string, blocks map[string]string, subs Substitutions) (domain.Envelope, error) {
	if len(blocks) == 0 {
		return domain.Envelope{}, fmt.Errorf("%w: envelope requires at least one query block", apperrors.ErrValidation)
	}

	for placeholder, value := range subs {
		if err := value.check(placeholder); err != nil {
			return domain.Envelope{}, err
		}
	}

	// Substitute longest placeholders first: START_DATE is a substring of
	// LAST_START_DATE, and map iteration order must never decide which one a
	// template occurrence belongs to.
	placeholders := make([]string, 0, len(subs))
	for placeholder := range subs {
		placeholders = append(placeholders, placeholder)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		if len(placeholders[i]) != len(placeholders[j]) {
			return len(placeholders[i]) > len(placeholders[j])
		}
		return placeholders[i] < placeholders[j]
	})

	built := make(map[string]domain.QueryBlock, len(blocks))
	for name, sqlTemplate := range blocks {
		sql := sqlTemplate
		for _, placeholder := range placeholders {
			sql = strings.ReplaceAll(sql, placeholder, subs[placeholder].text)
		}
		built[name] = domain.QueryBlock{Type: domain.QueryBlockType, SQL: sql}
	}

	return domain.Envelope{
		TenantID:   tenantID,
		TenantPass: tenantPass,
		Blocks:     built,
	}, nil
}

func (v Value) check(placeholder string) error {
	if v.raw {
		if !rawValuePattern.MatchString(v.text) {
			return fmt.Errorf("%w: raw value for %s contains characters outside the allowed charset", apperrors.ErrValidation, placeholder)
		}
		return nil
	}
	if strings.Contains(v.text, "'") {
		return fmt.Errorf("%w: text value for %s contains a SQL string delimiter", apperrors.ErrValidation, placeholder)
	}
	return nil
}
