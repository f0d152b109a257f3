package tmdb

// GenreAnimation is shared by the movie and TV tables.
const GenreAnimation = 16

const unknownGenre = "Unknown"

var movieGenres = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance", 878: "Science Fiction",
	10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

var tvGenres = map[int]string{
	10759: "Action & Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 10762: "Kids",
	9648: "Mystery", 10763: "News", 10764: "Reality", 10765: "Sci-Fi & Fantasy",
	10766: "Soap", 10767: "Talk", 10768: "War & Politics", 37: "Western",
}

// MovieGenres maps movie genre ids to names; unmapped ids become "Unknown".
func MovieGenres(ids []int) []string { return genreNames(movieGenres, ids) }

// TVGenres maps TV genre ids to names; unmapped ids become "Unknown".
func TVGenres(ids []int) []string { return genreNames(tvGenres, ids) }

func genreNames(table map[int]string, ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := table[id]
		if !ok {
			name = unknownGenre
		}
		out = append(out, name)
	}
	return out
}
