package models

// PermissionResponse is the watch bridge reply to a health permission request.
type PermissionResponse struct {
	Granted bool `json:"granted"`
}

// DeviceStatus is the watch bridge reachability report.
type DeviceStatus struct {
	Connected bool   `json:"connected"`
	Model     string `json:"model,omitempty"`
}
