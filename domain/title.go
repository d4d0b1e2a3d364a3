package domain

// ShowType distinguishes movies from series in search results.
type ShowType string

const (
	ShowTypeMovie  ShowType = "movie"
	ShowTypeSeries ShowType = "series"
)

// Title is a movie or TV show as returned by title search. The ID is the
// external provider's identifier (an IMDB id where the provider exposes one).
type Title struct {
	ID          string   `json:"id"`
	IMDBID      string   `json:"imdb_id,omitempty"`
	Title       string   `json:"title"`
	ShowType    ShowType `json:"show_type"`
	ReleaseYear int      `json:"release_year,omitempty"`
	Overview    string   `json:"overview,omitempty"`
}
