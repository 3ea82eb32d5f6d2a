package model

const HealthStatusHealthy = "healthy"

// HealthStatus is the response of the health endpoint. Watching lists the
// fields the service detects changes of, in reporting order.
type HealthStatus struct {
	Status   string      `json:"status"`
	Service  string      `json:"service"`
	Version  string      `json:"version"`
	Watching []FieldName `json:"watching"`
}

// NewHealthStatus returns a healthy status for service
func NewHealthStatus(service, version string) *HealthStatus {
	return &HealthStatus{
		Status:   HealthStatusHealthy,
		Service:  service,
		Version:  version,
		Watching: []FieldName{FieldState, FieldPriority, FieldAssignee, FieldComment},
	}
}
