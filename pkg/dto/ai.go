package dto

type AIChatRequest struct {
	Message string `json:"message"`
}

type AIChatResponse struct {
	Reply string `json:"reply"`
}

type GenerateTasksRequest struct {
	Description string `json:"description"`
}

type ExplainSnippetRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type ExplainSnippetResponse struct {
	Explanation string `json:"explanation"`
}

type SummarizeProjectResponse struct {
	Summary string `json:"summary"`
}
