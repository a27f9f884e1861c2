package shared

const (
	ProjectID = "fitai-project" // Can be overridden by GOOGLE_CLOUD_PROJECT

	TopicPlanGenerate = "topic-plan-generate"

	EventTypeProfileUpdated = "com.fitai.profile.updated"

	CollectionUsers      = "users"
	CollectionProgress   = "progress" // sub-collection of users/{id}
	CollectionExecutions = "executions"

	SecretJWT = "JWT_SECRET"
)
