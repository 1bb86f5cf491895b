package catalog

import "filmoteka/internal/domain"

// Каталог отдаёт поля в snake_case, внутреннее представление — camelCase.
// Преобразование обязано быть без потерь в обе стороны.

type movieWire struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids"`
}

func (w movieWire) toDomain() domain.Movie {
	return domain.Movie{
		ID:           w.ID,
		Title:        w.Title,
		PosterPath:   w.PosterPath,
		BackdropPath: w.BackdropPath,
		Overview:     w.Overview,
		ReleaseDate:  w.ReleaseDate,
		VoteAverage:  w.VoteAverage,
		VoteCount:    w.VoteCount,
		GenreIDs:     w.GenreIDs,
	}
}

type genreWire struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieDetailsWire struct {
	movieWire
	Runtime *int        `json:"runtime"`
	Budget  int64       `json:"budget"`
	Revenue int64       `json:"revenue"`
	Genres  []genreWire `json:"genres"`
	Tagline *string     `json:"tagline"`
	Status  string      `json:"status"`
	ImdbID  *string     `json:"imdb_id"`
}

func (w movieDetailsWire) toDomain() domain.MovieDetails {
	genres := make([]domain.Genre, 0, len(w.Genres))
	for _, g := range w.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return domain.MovieDetails{
		Movie:   w.movieWire.toDomain(),
		Runtime: w.Runtime,
		Budget:  w.Budget,
		Revenue: w.Revenue,
		Genres:  genres,
		Tagline: w.Tagline,
		Status:  w.Status,
		ImdbID:  w.ImdbID,
	}
}

type pageWire struct {
	Page         int         `json:"page"`
	Results      []movieWire `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// MoviePage — страница результатов каталога во внутреннем представлении
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []domain.Movie `json:"results"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
}

func (w pageWire) toDomain() *MoviePage {
	results := make([]domain.Movie, 0, len(w.Results))
	for _, m := range w.Results {
		results = append(results, m.toDomain())
	}
	return &MoviePage{
		Page:         w.Page,
		Results:      results,
		TotalPages:   w.TotalPages,
		TotalResults: w.TotalResults,
	}
}
