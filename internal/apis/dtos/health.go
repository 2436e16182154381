package dtos

type HealthResponse struct {
	Status   string `json:"status"`
	QueryLog string `json:"query_log"`
}
