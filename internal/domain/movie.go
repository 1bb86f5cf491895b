package domain

// Movie — значение фильма в представлении приложения (camelCase поля).
// Источник данных либо внешний каталог (snake_case, см. modules/catalog),
// либо сохранённое избранное; оба представления изоморфны.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"posterPath"`
	BackdropPath *string `json:"backdropPath"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"releaseDate"`
	VoteAverage  float64 `json:"voteAverage"`
	VoteCount    int     `json:"voteCount"`
	GenreIDs     []int   `json:"genreIds"`
}

// Genre — жанр из детальной карточки фильма
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails расширяет Movie полями детального эндпоинта каталога
type MovieDetails struct {
	Movie
	Runtime *int    `json:"runtime"`
	Budget  int64   `json:"budget"`
	Revenue int64   `json:"revenue"`
	Genres  []Genre `json:"genres"`
	Tagline *string `json:"tagline"`
	Status  string  `json:"status"`
	ImdbID  *string `json:"imdbId"`
}
