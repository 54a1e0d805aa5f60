package domain

// Container represents one deployed instance of the service image.
type Container struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status"`
	State  string `json:"state"` // running, exited, etc.
	Ports  string `json:"ports"`
}
