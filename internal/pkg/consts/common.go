package consts

const (
	// ContextUserID gin 上下文中的用户 ID 键
	ContextUserID = "user_id"
	ContextRoles  = "roles"
)

const (
	StrategyHot           = "hot"
	StrategySimilar       = "similar"
	StrategyRelated       = "related"
	StrategyUser          = "user"
	StrategyCollaborative = "collaborative"
)

const (
	RoleAdmin = "ADMIN"
)
