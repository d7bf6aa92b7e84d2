package constants

// 用户角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskTopSellersBuild = "catalog:top_sellers_build"
)

// 缓存键常量
const (
	RedisPrefixDefault = "gv"
	CacheKeyTopSellers = "catalog:top_sellers"
)

// 站点语言常量
const (
	LocaleEn = "en"
	LocaleTh = "th"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEn, LocaleTh}

// 热销榜默认条数
const DefaultTopSellersLimit = 5
