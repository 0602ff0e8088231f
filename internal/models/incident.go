package models

import (
	"errors"
	"time"
)

// ErrIncidentNotFound возвращается, когда инцидента с таким id нет в хранилище
var ErrIncidentNotFound = errors.New("incident not found")

type IncidentStatus string

const (
	StatusPending    IncidentStatus = "pending"
	StatusInProgress IncidentStatus = "in_progress"
	StatusResolved   IncidentStatus = "resolved"
)

// Valid проверяет, что статус входит в допустимый набор
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type SyncStatus string

const (
	SyncPending SyncStatus = "pending_sync"
	SyncSynced  SyncStatus = "synced"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Incident - запись об инциденте в локальном хранилище.
// Timeline хранится от самого нового события к самому старому.
type Incident struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Vehicle     string          `json:"vehicle"`
	Team        string          `json:"team"`
	Signature   string          `json:"signature,omitempty"`
	Status      IncidentStatus  `json:"status"`
	SyncStatus  SyncStatus      `json:"syncStatus"`
	Location    *Location       `json:"location,omitempty"`
	Images      []string        `json:"images"`
	Videos      []string        `json:"videos"`
	Timeline    []TimelineEvent `json:"timeline"`
	UserID      string          `json:"userId,omitempty"`
	AssignedTo  string          `json:"assignedTo,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// PrependEvent добавляет событие в начало timeline
func (i *Incident) PrependEvent(event TimelineEvent) {
	i.Timeline = append([]TimelineEvent{event}, i.Timeline...)
}

// IncidentPatch - частичное обновление инцидента. nil означает "поле не передано".
type IncidentPatch struct {
	Title       *string
	Description *string
	Type        *string
	Vehicle     *string
	Team        *string
	Signature   *string
	Status      *IncidentStatus
	Location    *Location
	Images      []string
	Videos      []string
	AssignedTo  *string
}

// Apply накладывает переданные поля поверх инцидента
func (p IncidentPatch) Apply(i *Incident) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Vehicle != nil {
		i.Vehicle = *p.Vehicle
	}
	if p.Team != nil {
		i.Team = *p.Team
	}
	if p.Signature != nil {
		i.Signature = *p.Signature
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.Location != nil {
		loc := *p.Location
		i.Location = &loc
	}
	if p.Images != nil {
		i.Images = append([]string(nil), p.Images...)
	}
	if p.Videos != nil {
		i.Videos = append([]string(nil), p.Videos...)
	}
	if p.AssignedTo != nil {
		i.AssignedTo = *p.AssignedTo
	}
}

// IncidentFilter - фильтр для списка инцидентов. Пустой Status - все инциденты.
type IncidentFilter struct {
	Status IncidentStatus
}

// Match сообщает, проходит ли инцидент фильтр
func (f IncidentFilter) Match(i *Incident) bool {
	return f.Status == "" || i.Status == f.Status
}

// SyncTask - отложенная задача синхронизации конкретной версии инцидента
type SyncTask struct {
	IncidentID string    `json:"incident_id"`
	Version    int       `json:"version"`
	DueAt      time.Time `json:"due_at"`
}
