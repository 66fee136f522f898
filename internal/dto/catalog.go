package dto

// ChapterResponse represents a chapter in the API response
// @Description Chapter information
type ChapterResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// ModuleResponse represents a module of a chapter
type ModuleResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ChapterID   string `json:"chapter_id"`
	YearMin     *int   `json:"year_min,omitempty"`
	YearMax     *int   `json:"year_max,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// ChapterDetailResponse is a chapter with its modules
// @Description Chapter with its ordered module list
type ChapterDetailResponse struct {
	ChapterResponse
	Modules []ModuleResponse `json:"modules"`
}
