package dtos

import "time"

// ConversationTurn is one previous question and the answer shown for it
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ConsultRequest struct {
	Question string             `json:"question"`
	Backend  string             `json:"backend"`
	History  []ConversationTurn `json:"history"`
}

// ConsultError describes why a consultation stopped. Kind is one of the
// constants.ErrorKind* values.
type ConsultError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// TableView is the reconstructed table. Notice is informational; Warning
// comes with Raw when the rows could not be laid out.
type TableView struct {
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
	Notice  string   `json:"notice,omitempty"`
	Warning string   `json:"warning,omitempty"`
	Raw     string   `json:"raw,omitempty"`
}

type ConsultResponse struct {
	Backend   string        `json:"backend"`
	Narrative string        `json:"narrative,omitempty"`
	Table     *TableView    `json:"table,omitempty"`
	SQL       string        `json:"sql,omitempty"`
	Error     *ConsultError `json:"error,omitempty"`
}

type BackendStatus struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Configured  bool   `json:"configured"`
	Connected   bool   `json:"connected"`
}

type BackendListResponse struct {
	Backends []BackendStatus `json:"backends"`
}

type TablesResponse struct {
	Backend string   `json:"backend"`
	Tables  []string `json:"tables"`
	// Message confirms the connection; Notice is set when no table was found.
	Message string        `json:"message,omitempty"`
	Notice  string        `json:"notice,omitempty"`
	Error   *ConsultError `json:"error,omitempty"`
}

type QueryLogEntry struct {
	ID         string    `json:"id"`
	Backend    string    `json:"backend"`
	Question   string    `json:"question"`
	SQL        string    `json:"sql,omitempty"`
	Outcome    string    `json:"outcome"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	RowCount   int       `json:"row_count"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type QueryLogResponse struct {
	Enabled bool            `json:"enabled"`
	Queries []QueryLogEntry `json:"queries"`
}
