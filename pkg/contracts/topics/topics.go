package topics

const (
	// Feed
	GamesRefreshed = "games_refreshed"

	// DLQs
	GamesRefreshedDLQ = "games_refreshed_dlq"
)
