package dtos

// Response is the envelope of every JSON endpoint
type Response struct {
	Success bool        `json:"success"`
	Error   *string     `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
