package assist

import (
	"context"
	"strings"

	"mailmind_server/core/agent/llm"
	"mailmind_server/core/agent/rag"
	"mailmind_server/core/port/in"
	"mailmind_server/pkg/apperr"
	"mailmind_server/pkg/logger"
)

// summarizer and reasoner split the LLM surface by provider role:
// the OpenRouter model drafts user-facing text, the Groq model does
// structured extraction. Interfaces keep the service testable offline.
type summarizer interface {
	SummarizeEmail(ctx context.Context, subject, snippet, from, date, ragContext string, similarCount int) (string, error)
	GenerateReply(ctx context.Context, subject, snippet, ragContext string) (string, error)
}

type reasoner interface {
	GenerateFollowUp(ctx context.Context, subject, snippet, from, date string) (*llm.FollowUp, error)
	BuildActionPlan(ctx context.Context, subject, content, ragContext string) (*llm.ActionPlan, error)
}

type retriever interface {
	FindSimilar(ctx context.Context, q rag.Query) ([]rag.SimilarEmail, error)
}

type Service struct {
	writer    summarizer
	planner   reasoner
	retriever retriever
	topK      int
	log       *logger.Logger
}

func NewService(writer *llm.Client, planner *llm.Client, r *rag.Retriever, topK int) *Service {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	s := &Service{
		topK: topK,
		log:  logger.WithField("service", "assist"),
	}
	if writer != nil {
		s.writer = writer
	}
	if planner != nil {
		s.planner = planner
	}
	if r != nil {
		s.retriever = r
	}
	return s
}

var _ in.AssistService = (*Service)(nil)

func (s *Service) Summarize(ctx context.Context, req in.SummarizeRequest) (*in.SummarizeResult, error) {
	if s.writer == nil {
		return nil, apperr.ConfigError("summarization LLM not configured")
	}

	ragContext, count := s.retrieveContext(ctx, req.Subject, req.Snippet, req.From, req.UseRAG)

	summary, err := s.writer.SummarizeEmail(ctx, req.Subject, req.Snippet, req.From, req.Date, ragContext, count)
	if err != nil {
		return nil, err
	}

	return &in.SummarizeResult{
		Summary:            summary,
		RAGUsed:            count > 0,
		SimilarEmailsCount: count,
	}, nil
}

func (s *Service) Reply(ctx context.Context, req in.ReplyRequest) (*in.ReplyResult, error) {
	if s.writer == nil {
		return nil, apperr.ConfigError("reply LLM not configured")
	}

	ragContext, count := s.retrieveContext(ctx, req.Subject, req.Snippet, req.From, req.UseRAG)

	reply, err := s.writer.GenerateReply(ctx, req.Subject, req.Snippet, ragContext)
	if err != nil {
		return nil, err
	}

	return &in.ReplyResult{
		Reply:              reply,
		RAGUsed:            count > 0,
		SimilarEmailsCount: count,
	}, nil
}

func (s *Service) FollowUp(ctx context.Context, req in.FollowUpRequest) (*llm.FollowUp, error) {
	if s.planner == nil {
		return nil, apperr.ConfigError("follow-up LLM not configured")
	}
	return s.planner.GenerateFollowUp(ctx, req.Subject, req.Snippet, req.From, req.Date)
}

func (s *Service) HandleForMe(ctx context.Context, req in.HandleRequest) (*in.HandleResult, error) {
	if s.planner == nil {
		return nil, apperr.ConfigError("action-plan LLM not configured")
	}

	content := req.Body
	if content == "" {
		content = req.Snippet
	}

	ragContext, count := s.retrieveContext(ctx, req.Subject, content, req.From, req.UseRAG)

	plan, err := s.planner.BuildActionPlan(ctx, req.Subject, content, ragContext)
	if err != nil {
		return nil, err
	}

	return &in.HandleResult{
		Actions: plan,
		RAGUsed: count > 0,
	}, nil
}

// retrieveContext runs sender-scoped retrieval and formats the prompt
// context block. Retrieval failures never fail the assist call.
func (s *Service) retrieveContext(ctx context.Context, subject, snippet, from string, useRAG bool) (string, int) {
	if !useRAG || s.retriever == nil {
		return "", 0
	}

	queryText := strings.TrimSpace(subject + " " + snippet)
	if queryText == "" {
		return "", 0
	}

	results, err := s.retriever.FindSimilar(ctx, rag.Query{
		Text:         queryText,
		TopK:         s.topK,
		SenderFilter: rag.NormalizeAddress(from),
	})
	if err != nil {
		s.log.WithError(err).Warn("retrieval failed, continuing without context")
		return "", 0
	}

	return rag.BuildContext(results), len(results)
}
