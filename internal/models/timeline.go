package models

import "time"

const (
	EventTitleCreated       = "Ocorrência Registrada"
	EventTitleStatusChanged = "Status Atualizado"
	EventTitleEdited        = "Edição Realizada"
	EventTitleSynced        = "Sincronizado"
)

const (
	EventIconCreated = "plus-circle"
	EventIconStatus  = "refresh-cw"
	EventIconEdit    = "edit-2"
	EventIconSynced  = "cloud"
)

type TimelineEvent struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}
