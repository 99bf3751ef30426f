package sales

import "net/url"

const (
	genreRequired            = "Genre parameter is required"
	genreAndPlatformRequired = "Genre and platform parameters are required"
)

type GameRevenueQuery struct {
	Genre string `validate:"required"`
}

type TopPlaytimeQuery struct {
	Genre    string `validate:"required"`
	Platform string `validate:"required"`
}

type PlatformYearQuery struct {
	Years []string
}

func gameRevenueQuery(q url.Values) GameRevenueQuery {
	return GameRevenueQuery{Genre: q.Get("genre")}
}

func topPlaytimeQuery(q url.Values) TopPlaytimeQuery {
	return TopPlaytimeQuery{Genre: q.Get("genre"), Platform: q.Get("platform")}
}

func platformYearQuery(q url.Values) PlatformYearQuery {
	return PlatformYearQuery{Years: q["year"]}
}
