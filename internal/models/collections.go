package models

// Document store collection names.
const (
	CollectionProjects      = "projects"
	CollectionProjectRoles  = "project_roles"
	CollectionTasks         = "tasks"
	CollectionMessages      = "messages"
	CollectionMilestones    = "milestones"
	CollectionSchedule      = "schedule_events"
	CollectionWellness      = "wellness_settings"
	CollectionResources     = "shared_resources"
	CollectionActivities    = "live_activities"
	CollectionNotifications = "team_notifications"
	CollectionUsers         = "users"
)

// CompositeKey builds the `{project_id}_{user_id}` key used by the
// project_roles and wellness_settings collections.
func CompositeKey(projectID, userID string) string {
	return projectID + "_" + userID
}
