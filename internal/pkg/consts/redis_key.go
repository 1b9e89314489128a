package consts

const (
	UserProfileKey = "recommend:profile:"
	HotListKey     = "recommend:hot:"
)

const (
	HotListWarmLock = "lock:recommend:hot:warm"
)
const (
	TokenBlacklistKey = "token:blacklist:"
)
