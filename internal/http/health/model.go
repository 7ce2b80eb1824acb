package health

// StatusOK is the only status the health endpoint reports.
const StatusOK = "OK"

// Data models the health payload.
type Data struct {
	Status string  `json:"status" doc:"Liveness status"                 example:"OK"`
	Uptime float64 `json:"uptime" doc:"Seconds since the process started" example:"12.345"`
}

// GetOutput wraps the health payload.
type GetOutput struct {
	Body Data
}
