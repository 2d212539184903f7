package dto

type CreateSnippetRequest struct {
	Title       string  `json:"title"`
	Language    string  `json:"language"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
}

type UpdateSnippetRequest struct {
	Title       *string `json:"title"`
	Language    *string `json:"language"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}
