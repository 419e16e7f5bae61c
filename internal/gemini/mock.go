package gemini

import "context"

// MockGenerator records requests and replays a fixed response.
type MockGenerator struct {
	Response *ResponseData
	Error    error
	Requests []RequestData
}

func (m *MockGenerator) Generate(_ context.Context, request RequestData) (*ResponseData, error) {
	m.Requests = append(m.Requests, request)
	return m.Response, m.Error
}
