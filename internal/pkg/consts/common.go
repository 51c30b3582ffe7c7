package consts

const (
	DefaultFeedLimit       = 10
	DefaultFollowingLimit  = 20
	DefaultSuggestionLimit = 10
	DefaultTrendingLimit   = 10
	MaxPageLimit           = 50
)

const (
	MaxFollowingCount = 5000
	MaxCommentLength  = 2000
	MaxTitleLength    = 200
)

const (
	DefaultStatsDays = 7
	MaxStatsDays     = 90
)

const (
	AnonymousAuthorName = "Anonymous"
)
