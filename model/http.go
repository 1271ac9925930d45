package model

type ConvertRequestBody struct {
	Chart string    `json:"chart"`
	Ticks []Tick    `json:"ticks"`
	Times []float64 `json:"times"`
}

type ConvertResponse struct {
	Resolution float64   `json:"resolution"`
	Times      []float64 `json:"times"`
	Ticks      []Tick    `json:"ticks"`
}

type ParseResponse struct {
	RequestId string       `json:"request_id"`
	Chart     *ParsedChart `json:"chart"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
