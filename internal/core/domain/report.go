package domain

import "encoding/json"

// QueryBlockType is the only block type the report server understands.
const QueryBlockType = "Query"

// QueryBlock is one named SQL-bearing block inside a report envelope.
type QueryBlock struct {
	Type string `json:"Type"`
	SQL  string `json:"SQL"`
}

// Envelope is the JSON request body sent to the report server: tenant
// identity plus one or more named query blocks. Several blocks may share one
// envelope (e.g. CurrentTurnover + LastTurnover + CurrentPayType) so related
// queries travel in a single round trip.
type Envelope struct {
	TenantID   string
	TenantPass string
	Blocks     map[string]QueryBlock
}

// MarshalJSON renders the wire shape {"Id":…, "Pass":…, "<block>":{…}, …}.
// Tenant identity is written after the blocks, so a block that happens to be
// named Id or Pass can never smuggle its own credential into the envelope.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Blocks)+2)
	for name, block := range e.Blocks {
		out[name] = block
	}
	out["Id"] = e.TenantID
	out["Pass"] = e.TenantPass
	return json.Marshal(out)
}

// Record is one flat row of a result set.
type Record map[string]any

// ReportResult is the interpreted report server response. ResultCode zero is
// the only success value; any other code is a domain error, not a transport
// error, and never reaches callers inside a ReportResult.
type ReportResult struct {
	ResultCode    int
	ResultMessage string
	// BlockOrder preserves the order the named result sets appeared in the
	// payload; Blocks holds the rows per name.
	BlockOrder []string
	Blocks     map[string][]Record
}

// Block returns the rows of a named result set, or nil when the server did
// not send it.
func (r ReportResult) Block(name string) []Record {
	return r.Blocks[name]
}
