package types

// APIError is the public error payload. Message is either a single string or
// a list of strings when several validation constraints failed.
type APIError struct {
	Message any `json:"message"`
	Status  int `json:"status"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
