package consts

const (
	DefaultAvatarURL = "default_avatar.png"

	SystemSenderName = "系统通知"
)

// 通知事件 payload 的约定字段
const (
	PayloadPlaylistID    = "playlist_id"
	PayloadPlaylistTitle = "playlist_title"
	PayloadPercentage    = "percentage"
	PayloadStatus        = "status"
	PayloadReason        = "reason"
)

// PayloadStatusReverted 乐观更新被服务器拒绝后的补偿事件状态
const PayloadStatusReverted = "reverted"
