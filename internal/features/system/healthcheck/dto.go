package system_healthcheck

type DiskUsage struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type HealthcheckResponse struct {
	Status string     `json:"status"`
	Disk   *DiskUsage `json:"disk,omitempty"`
}
