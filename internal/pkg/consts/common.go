package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

// 角色名
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// 业务上限
const (
	FeedFetchLimit       = 50
	NotificationLimit    = 50
	AdminUserListLimit   = 100
	PostContentMaxLen    = 500
	CommentContentMaxLen = 500
	BioMaxLen            = 160
	DisplayNameMaxLen    = 50

	AvatarMaxSize    = 2 << 20 // 2MB
	PostImageMaxSize = 5 << 20 // 5MB
)
