package consts

const (
	ViewCacheKey    = "view:cache:"
	ViewCacheTagKey = "view:tag:"

	FeedHomeKey     = "feed:home:"
	FeedExploreKey  = "feed:explore:"
	FeedUserKey     = "feed:user:"
	PostDetailKey   = "post:detail:"
	ProfileViewKey  = "profile:view:"
	NotificationKey = "notification:list:"
)

const (
	ReportLock      = "report:lock:"
	OrphanCleanLock = "cron:orphan:lock"
)
