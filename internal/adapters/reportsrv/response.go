package reportsrv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
)

const (
	resultCodeField    = "ResultCode"
	resultMessageField = "ResultMessage"
)

// UndefinedErrorKey is the message key for result codes outside the known
// table.
const UndefinedErrorKey = "report.error.undefined"

// messageKeys maps the report server's result codes onto localization keys.
// The gateway never renders text itself; the caller supplies the lookup.
var messageKeys = map[int]string{
	100: "report.error.gateway_auth",
	102: "report.error.unknown_object",
	103: "report.error.object_credential",

	200: "report.error.envelope_invalid",
	201: "report.error.block_type_missing",
	202: "report.error.block_type_unsupported",
	203: "report.error.query_invalid",
	204: "report.error.query_timeout",
	205: "report.error.result_too_large",

	1000: "report.error.pos_general",
	1001: "report.error.pos_article_unknown",
	1002: "report.error.pos_article_locked",
	1003: "report.error.pos_price_invalid",
	1004: "report.error.pos_promotion_unknown",
	1005: "report.error.pos_promotion_overlap",
	1006: "report.error.pos_operator_unknown",
	1007: "report.error.pos_operator_inactive",
	1008: "report.error.pos_group_unknown",
	1009: "report.error.pos_taxgroup_unknown",
	1010: "report.error.pos_write_rejected",
	1011: "report.error.pos_storage_full",

	1020: "report.error.maintenance",
}

// MessageKey returns the localization key for a result code, falling back to
// the undefined-error key for codes outside the table.
func MessageKey(code int) string {
	if key, ok := messageKeys[code]; ok {
		return key
	}
	return UndefinedErrorKey
}

// Parse interprets a report server response body.
//
// A body that is not a JSON object wraps apperrors.ErrParse. A parsed body
// missing ResultCode is a contract violation and also an ErrParse. A non-zero
// ResultCode becomes a *apperrors.DomainError carrying the code's message
// key. On success every remaining top-level key is returned as a named block
// of flat records, in payload order.
func Parse(data []byte) (domain.ReportResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return domain.ReportResult{}, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return domain.ReportResult{}, fmt.Errorf("%w: body is not a JSON object", apperrors.ErrParse)
	}

	result := domain.ReportResult{
		ResultCode: -1,
		Blocks:     make(map[string][]domain.Record),
	}
	codeSeen := false

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return domain.ReportResult{}, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return domain.ReportResult{}, fmt.Errorf("%w: non-string object key", apperrors.ErrParse)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return domain.ReportResult{}, fmt.Errorf("%w: value of %q: %v", apperrors.ErrParse, key, err)
		}

		switch key {
		case resultCodeField:
			if err := json.Unmarshal(raw, &result.ResultCode); err != nil {
				return domain.ReportResult{}, fmt.Errorf("%w: %s is not numeric", apperrors.ErrParse, resultCodeField)
			}
			codeSeen = true
		case resultMessageField:
			if err := json.Unmarshal(raw, &result.ResultMessage); err != nil {
				return domain.ReportResult{}, fmt.Errorf("%w: %s is not a string", apperrors.ErrParse, resultMessageField)
			}
		default:
			var records []domain.Record
			if err := json.Unmarshal(raw, &records); err != nil {
				return domain.ReportResult{}, fmt.Errorf("%w: block %q is not a record list", apperrors.ErrParse, key)
			}
			result.BlockOrder = append(result.BlockOrder, key)
			result.Blocks[key] = records
		}
	}

	if !codeSeen {
		return domain.ReportResult{}, fmt.Errorf("%w: %s missing from response", apperrors.ErrParse, resultCodeField)
	}
	if result.ResultCode != 0 {
		return domain.ReportResult{}, apperrors.NewDomainError(result.ResultCode, MessageKey(result.ResultCode))
	}
	return result, nil
}
