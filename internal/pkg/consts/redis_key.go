package consts

const (
	TokenDenyKey          = "token:deny:"
	UserProfileKey        = "user:profile:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	PostLikeCountKey      = "post:like:count:"
	PostCommentCountKey   = "post:comment:count:"
	ContactRateKey        = "contact:rate:"
	DashboardStatsKey     = "admin:dashboard:stats"
)
