package models

// DashboardStats - сводка для панелей начальника и администратора
type DashboardStats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	InProgress  int `json:"in_progress"`
	Resolved    int `json:"resolved"`
	PendingSync int `json:"pending_sync"`
	TotalToday  int `json:"total_today"`
	TotalWeek   int `json:"total_week"`
	TotalMonth  int `json:"total_month"`
	Users       int `json:"users"`
	ActiveUsers int `json:"active_users"`
}

// AuditEntry - событие timeline вместе с инцидентом, к которому оно относится
type AuditEntry struct {
	IncidentID    string        `json:"incident_id"`
	IncidentTitle string        `json:"incident_title"`
	Event         TimelineEvent `json:"event"`
}
