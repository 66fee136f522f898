package seedmodels

// SeedChoice is one answer option of a seeded question.
type SeedChoice struct {
	Label     string `json:"label"`
	IsCorrect bool   `json:"is_correct"`
}

// SeedQuestion defines a question item in the JSON seed file.
type SeedQuestion struct {
	Bank        string       `json:"bank"`
	Stem        string       `json:"stem"`
	Explanation string       `json:"explanation"`
	Difficulty  int          `json:"difficulty"`
	Choices     []SeedChoice `json:"choices"`
}

// SeedModule defines a module of a chapter in the JSON seed file.
type SeedModule struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	YearMin     *int           `json:"year_min"`
	YearMax     *int           `json:"year_max"`
	Questions   []SeedQuestion `json:"questions"`
}

// SeedChapter defines a top-level chapter in the JSON seed file.
type SeedChapter struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Modules     []SeedModule `json:"modules"`
}
