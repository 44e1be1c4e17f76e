package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type EventType string

const (
	EventTypeWork    EventType = "work"
	EventTypeBreak   EventType = "break"
	EventTypeMeal    EventType = "meal"
	EventTypeSleep   EventType = "sleep"
	EventTypeMeeting EventType = "meeting"
)

// ScheduleEvent is a calendar block scoped to one (project, user) pair.
type ScheduleEvent struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Type      EventType `json:"type"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Completed bool      `json:"completed"`
}

func (e ScheduleEvent) ToDocument() docstore.Document {
	return docstore.Document{
		"id":         e.ID,
		"project_id": e.ProjectID,
		"user_id":    e.UserID,
		"title":      e.Title,
		"type":       string(e.Type),
		"start_time": docstore.WriteTime(e.StartTime),
		"end_time":   docstore.WriteTime(e.EndTime),
		"completed":  e.Completed,
	}
}

func ScheduleEventFromDocument(doc docstore.Document) ScheduleEvent {
	return ScheduleEvent{
		ID:        docstore.ReadString(doc, "id"),
		ProjectID: docstore.ReadString(doc, "project_id"),
		UserID:    docstore.ReadString(doc, "user_id"),
		Title:     docstore.ReadString(doc, "title"),
		Type:      EventType(docstore.ReadString(doc, "type")),
		StartTime: docstore.ReadTime(doc, "start_time"),
		EndTime:   docstore.ReadTime(doc, "end_time"),
		Completed: docstore.ReadBool(doc, "completed"),
	}
}

// WellnessSettings holds the per-(project, user) wellness reminder
// configuration, keyed `{project_id}_{user_id}` with upsert semantics.
type WellnessSettings struct {
	ProjectID          string `json:"project_id"`
	UserID             string `json:"user_id"`
	WorkMinutes        int    `json:"work_minutes"`
	BreakMinutes       int    `json:"break_minutes"`
	SleepTime          string `json:"sleep_time"`
	WakeTime           string `json:"wake_time"`
	MealTime           string `json:"meal_time"`
	BreakReminders     bool   `json:"break_reminders"`
	HydrationReminders bool   `json:"hydration_reminders"`
}

func (w WellnessSettings) Key() string {
	return CompositeKey(w.ProjectID, w.UserID)
}

func (w WellnessSettings) ToDocument() docstore.Document {
	return docstore.Document{
		"project_id":          w.ProjectID,
		"user_id":             w.UserID,
		"work_minutes":        w.WorkMinutes,
		"break_minutes":       w.BreakMinutes,
		"sleep_time":          w.SleepTime,
		"wake_time":           w.WakeTime,
		"meal_time":           w.MealTime,
		"break_reminders":     w.BreakReminders,
		"hydration_reminders": w.HydrationReminders,
	}
}

func WellnessSettingsFromDocument(doc docstore.Document) WellnessSettings {
	return WellnessSettings{
		ProjectID:          docstore.ReadString(doc, "project_id"),
		UserID:             docstore.ReadString(doc, "user_id"),
		WorkMinutes:        docstore.ReadInt(doc, "work_minutes"),
		BreakMinutes:       docstore.ReadInt(doc, "break_minutes"),
		SleepTime:          docstore.ReadString(doc, "sleep_time"),
		WakeTime:           docstore.ReadString(doc, "wake_time"),
		MealTime:           docstore.ReadString(doc, "meal_time"),
		BreakReminders:     docstore.ReadBool(doc, "break_reminders"),
		HydrationReminders: docstore.ReadBool(doc, "hydration_reminders"),
	}
}
