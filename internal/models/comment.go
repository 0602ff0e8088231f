package models

import "time"

// Comment - комментарий к инциденту. UserName сохраняется как снимок на момент записи.
type Comment struct {
	ID         string    `json:"id"`
	IncidentID string    `json:"incidentId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
