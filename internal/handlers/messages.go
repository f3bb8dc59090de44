package handlers

import "github.com/retailboard/store_reports_app/internal/adapters/reportsrv"

// messages is the default English rendering of the report server's message
// keys. A deployment with real localization swaps the lookup passed into the
// route registration; the keys are the stable contract, not this text.
var messages = map[string]string{
	"report.error.gateway_auth":      "The gateway is not authorized at the report server",
	"report.error.unknown_object":    "The report server does not know this object",
	"report.error.object_credential": "The object's report credentials were rejected",

	"report.error.envelope_invalid":        "The report request was malformed",
	"report.error.block_type_missing":      "A report block did not declare its type",
	"report.error.block_type_unsupported":  "A report block used an unsupported type",
	"report.error.query_invalid":           "The report query was rejected",
	"report.error.query_timeout":           "The report query timed out at the till",
	"report.error.result_too_large":        "The report result was too large, narrow the time window",

	"report.error.pos_general":           "The till reported a general error",
	"report.error.pos_article_unknown":   "The till does not know this article",
	"report.error.pos_article_locked":    "The article is locked at the till",
	"report.error.pos_price_invalid":     "The till rejected the price",
	"report.error.pos_promotion_unknown": "The till does not know this promotion",
	"report.error.pos_promotion_overlap": "The promotion overlaps an existing one",
	"report.error.pos_operator_unknown":  "The till does not know this operator",
	"report.error.pos_operator_inactive": "The operator is inactive at the till",
	"report.error.pos_group_unknown":     "The till does not know this article group",
	"report.error.pos_taxgroup_unknown":  "The till does not know this tax group",
	"report.error.pos_write_rejected":    "The till rejected the change",
	"report.error.pos_storage_full":      "The till's storage is full",

	"report.error.maintenance": "The report server is in maintenance",

	reportsrv.UndefinedErrorKey: "The report server returned an unknown error",
}

// Localize resolves a message key to display text, falling back to the
// undefined-error text for keys outside the table.
func Localize(key string) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return messages[reportsrv.UndefinedErrorKey]
}
