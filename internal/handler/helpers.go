package handler

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}
