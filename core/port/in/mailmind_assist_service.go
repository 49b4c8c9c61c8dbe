package in

import (
	"context"

	"mailmind_server/core/agent/llm"
)

// AssistService is the inbound port for the AI assistance routes.
type AssistService interface {
	// Email summarization with optional retrieval context.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResult, error)

	// Reply drafting
	Reply(ctx context.Context, req ReplyRequest) (*ReplyResult, error)

	// Follow-up reminder suggestion
	FollowUp(ctx context.Context, req FollowUpRequest) (*llm.FollowUp, error)

	// Full action plan for an email (summary, reply draft, tasks)
	HandleForMe(ctx context.Context, req HandleRequest) (*HandleResult, error)
}

type SummarizeRequest struct {
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	From    string `json:"from"`
	Date    string `json:"date"`
	UseRAG  bool   `json:"use_rag"`
}

type SummarizeResult struct {
	Summary            string `json:"summary"`
	RAGUsed            bool   `json:"rag_used"`
	SimilarEmailsCount int    `json:"similar_emails_count"`
}

type ReplyRequest struct {
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	From    string `json:"from"`
	UseRAG  bool   `json:"use_rag"`
}

type ReplyResult struct {
	Reply              string `json:"reply"`
	RAGUsed            bool   `json:"rag_used"`
	SimilarEmailsCount int    `json:"similar_emails_count"`
}

type FollowUpRequest struct {
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	From    string `json:"from"`
	Date    string `json:"date"`
}

type HandleRequest struct {
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
	From    string `json:"from"`
	Date    string `json:"date"`
	UseRAG  bool   `json:"use_rag"`
}

type HandleResult struct {
	Actions *llm.ActionPlan `json:"actions"`
	RAGUsed bool            `json:"rag_used"`
}
