package waitlist

// ResetRequest is the admin reset payload. Both fields are optional; an
// absent total resets to zero and an absent cap leaves the cap unchanged.
type ResetRequest struct {
	Total *int `json:"total"`
	Cap   *int `json:"cap"`
}

// resetRequestFromPayload fills a ResetRequest from a loosely-typed body,
// coercing field by field. Values that cannot be coerced to an integer are
// treated as absent.
func resetRequestFromPayload(payload map[string]interface{}) *ResetRequest {
	request := &ResetRequest{}
	if total, ok := coerceInt(payload["total"]); ok {
		request.Total = &total
	}
	if capValue, ok := coerceInt(payload["cap"]); ok {
		request.Cap = &capValue
	}
	return request
}
