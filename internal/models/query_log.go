package models

// QueryLog records one consultation. It is stored as JSON in the recent
// queries list and never holds result rows.
type QueryLog struct {
	Backend    string `json:"backend"`
	Question   string `json:"question"`
	SQL        string `json:"sql,omitempty"`
	Outcome    string `json:"outcome"`
	ErrorKind  string `json:"error_kind,omitempty"`
	RowCount   int    `json:"row_count"`
	DurationMs int64  `json:"duration_ms"`
	Base
}

func NewQueryLog(backend, question string) *QueryLog {
	return &QueryLog{
		Backend:  backend,
		Question: question,
		Base:     NewBase(),
	}
}
