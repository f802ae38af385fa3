package models

// SearchQuery is the body of a search request. Query is a pointer so a missing
// field can be told apart from an empty string.
type SearchQuery struct {
	Query *string `json:"query"`
}

type SearchHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

type SearchResponse struct {
	Results []SearchHit `json:"results"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Message string `json:"message"`
}
