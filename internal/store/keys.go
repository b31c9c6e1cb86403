package store

import "fmt"

// Key scheme. Versions are keyed under their project so per-project listing
// is a single prefix scan; lookups by bare version id go through the
// version_idx pointer key.

func ProjectKey(projectID string) string {
	return "project:" + projectID
}

func VersionKey(projectID, versionID string) string {
	return fmt.Sprintf("version:%s:%s", projectID, versionID)
}

func VersionPrefix(projectID string) string {
	return fmt.Sprintf("version:%s:", projectID)
}

func VersionIndexKey(versionID string) string {
	return "version_idx:" + versionID
}

func FeedbackHistoryKey(feedbackID string) string {
	return "feedback_history:" + feedbackID
}

func ProjectFeedbackKey(projectID, feedbackID string) string {
	return fmt.Sprintf("project_feedback:%s:%s", projectID, feedbackID)
}

func ProjectFeedbackPrefix(projectID string) string {
	return fmt.Sprintf("project_feedback:%s:", projectID)
}

func ModificationKey(projectID, requestID string) string {
	return fmt.Sprintf("modification:%s:%s", projectID, requestID)
}

func ModificationPrefix(projectID string) string {
	return fmt.Sprintf("modification:%s:", projectID)
}

func ModificationIndexKey(requestID string) string {
	return "modification_idx:" + requestID
}

func NotificationKey(userID, notificationID string) string {
	return fmt.Sprintf("notification:%s:%s", userID, notificationID)
}

func NotificationPrefix(userID string) string {
	return fmt.Sprintf("notification:%s:", userID)
}

const ProjectPrefix = "project:"
