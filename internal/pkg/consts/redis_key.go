package consts

const (
	UserFollowingKey = "user:following:"
)

const (
	ScheduledPublishLock = "lock:post:scheduled_publish"
)
