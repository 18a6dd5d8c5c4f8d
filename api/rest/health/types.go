package health

type Response struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	Version         string `json:"version,omitempty"`
	ExceptionPolicy string `json:"exception_policy"`
}

type PingResponse struct {
	Message string `json:"message"`
}
