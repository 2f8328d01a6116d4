package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/repositories"
)

var (
	// ErrLawyerNotMatched rejects selecting a lawyer absent from the
	// case's match list; the case state stays unchanged.
	ErrLawyerNotMatched = errors.New("lawyer is not in the matched list")
	// ErrInvalidTransition rejects a backward or out-of-terminal status
	// change.
	ErrInvalidTransition = errors.New("invalid case status transition")
	ErrUnknownStatus     = errors.New("unknown case status")
)

// SubmitResult bundles the created case with the analysis (or fallback)
// returned to the caller of a problem submission.
type SubmitResult struct {
	Case     *models.Case
	Analysis *AIAnalysis
}

// CasePipeline sequences the analyzer and matcher against a single case
// and persists each state transition atomically. Analysis and matching
// failures degrade to defaults; the pipeline never blocks the user on
// the external service.
type CasePipeline interface {
	SubmitProblem(ctx context.Context, userID uuid.UUID, problem string, documents []models.CaseDocument) (*SubmitResult, error)
	SelectLawyer(ctx context.Context, userID, caseID, lawyerID uuid.UUID) (*models.Case, error)
	UpdateStatus(ctx context.Context, userID, caseID uuid.UUID, status models.CaseStatus) (*models.Case, error)
	AddDocument(ctx context.Context, userID, caseID uuid.UUID, doc models.CaseDocument) (*models.Case, error)
}

type casePipeline struct {
	caseRepo   repositories.CaseRepository
	lawyerRepo repositories.LawyerRepository
	analyzer   ProblemAnalyzer
	matcher    LawyerMatcher
	log        *zap.Logger
}

func NewCasePipeline(
	caseRepo repositories.CaseRepository,
	lawyerRepo repositories.LawyerRepository,
	analyzer ProblemAnalyzer,
	matcher LawyerMatcher,
	log *zap.Logger,
) CasePipeline {
	return &casePipeline{
		caseRepo:   caseRepo,
		lawyerRepo: lawyerRepo,
		analyzer:   analyzer,
		matcher:    matcher,
		log:        log,
	}
}

// SubmitProblem implements CasePipeline. The whole normalize-then-match
// flow runs synchronously inside the submitting request.
func (p *casePipeline) SubmitProblem(ctx context.Context, userID uuid.UUID, problem string, documents []models.CaseDocument) (*SubmitResult, error) {
	newCase := &models.Case{
		ID:              uuid.New(),
		UserID:          userID,
		OriginalProblem: problem,
		Category:        models.CategoryOther,
		Urgency:         models.UrgencyMedium,
		Status:          models.StatusProcessing,
		Documents:       documents,
		MatchedLawyers:  models.MatchedLawyers{},
	}
	if err := p.caseRepo.Create(newCase); err != nil {
		return nil, err
	}

	log := p.log.With(zap.String("case_id", newCase.ID.String()))

	// Step 1: analysis. Failure is non-fatal; the raw input stands in
	// for the processed problem and the pipeline continues.
	analysis, err := p.analyzer.Analyze(ctx, problem)
	if err != nil {
		log.Warn("analysis failed, continuing with fallback", zap.Error(err))
		analysis = FallbackAnalysis(problem)
	}

	if err := p.caseRepo.UpdateVersioned(newCase.ID, newCase.Version, map[string]interface{}{
		"processed_problem": analysis.ProcessedProblem,
		"category":          analysis.Category,
		"urgency":           analysis.Urgency,
		"status":            models.StatusMatching,
	}); err != nil {
		return nil, err
	}
	newCase.Version++

	// Step 2: matching against the bounded candidate pool. A directory
	// or matcher failure degrades to an empty match list; the case still
	// advances so the user is never blocked.
	matched := p.findMatches(ctx, log, analysis)

	if err := p.caseRepo.UpdateVersioned(newCase.ID, newCase.Version, map[string]interface{}{
		"matched_lawyers": matched,
		"status":          models.StatusAwaitingResponse,
	}); err != nil {
		return nil, err
	}

	final, err := p.caseRepo.FindByID(newCase.ID)
	if err != nil {
		return nil, err
	}

	log.Info("case pipeline completed",
		zap.String("category", string(final.Category)),
		zap.Int("matches", len(final.MatchedLawyers)))

	return &SubmitResult{Case: final, Analysis: analysis}, nil
}

func (p *casePipeline) findMatches(ctx context.Context, log *zap.Logger, analysis *AIAnalysis) models.MatchedLawyers {
	candidates, err := p.lawyerRepo.FindCandidates(models.CaseCategory(analysis.Category), MaxCandidates)
	if err != nil {
		log.Warn("candidate lookup failed, continuing without matches", zap.Error(err))
		return models.MatchedLawyers{}
	}
	if len(candidates) == 0 {
		return models.MatchedLawyers{}
	}

	pool := make(map[string]bool, len(candidates))
	profiles := make([]models.CandidateProfile, 0, len(candidates))
	for i := range candidates {
		profiles = append(profiles, candidates[i].ToCandidateProfile())
		pool[candidates[i].ID.String()] = true
	}

	caseCtx := models.CaseContext{
		Problem:  analysis.ProcessedProblem,
		Category: analysis.Category,
		Urgency:  analysis.Urgency,
	}

	results, err := p.matcher.Match(ctx, caseCtx, profiles)
	if err != nil {
		log.Warn("matching failed, continuing without matches", zap.Error(err))
		return models.MatchedLawyers{}
	}

	matched := make(models.MatchedLawyers, 0, len(results))
	for _, r := range results {
		// The model occasionally invents IDs; only candidates from the
		// submitted pool are kept.
		if !pool[r.LawyerID] {
			log.Warn("match result references unknown lawyer", zap.String("lawyer_id", r.LawyerID))
			continue
		}
		id, err := uuid.Parse(r.LawyerID)
		if err != nil {
			continue
		}
		matched = append(matched, models.MatchedLawyer{
			LawyerID:   id,
			MatchScore: r.Score,
			Status:     models.MatchPending,
		})
	}
	return matched
}

// SelectLawyer implements CasePipeline. The chosen lawyer must be present
// in the case's match list or the state is left untouched.
func (p *casePipeline) SelectLawyer(ctx context.Context, userID, caseID, lawyerID uuid.UUID) (*models.Case, error) {
	c, err := p.caseRepo.FindByIDForUser(caseID, userID)
	if err != nil {
		return nil, err
	}

	if !c.MatchedLawyers.Contains(lawyerID) {
		return nil, ErrLawyerNotMatched
	}
	if !c.Status.CanTransitionTo(models.StatusInProgress) {
		return nil, ErrInvalidTransition
	}

	if err := p.caseRepo.UpdateVersioned(caseID, c.Version, map[string]interface{}{
		"selected_lawyer_id": lawyerID,
		"status":             models.StatusInProgress,
	}); err != nil {
		return nil, err
	}

	return p.caseRepo.FindByID(caseID)
}

// UpdateStatus implements CasePipeline for explicit user-driven
// transitions such as cancellation and completion.
func (p *casePipeline) UpdateStatus(ctx context.Context, userID, caseID uuid.UUID, status models.CaseStatus) (*models.Case, error) {
	switch status {
	case models.StatusDraft, models.StatusProcessing, models.StatusMatching,
		models.StatusAwaitingResponse, models.StatusMatched,
		models.StatusInProgress, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil, ErrUnknownStatus
	}

	c, err := p.caseRepo.FindByIDForUser(caseID, userID)
	if err != nil {
		return nil, err
	}

	if !c.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := p.caseRepo.UpdateVersioned(caseID, c.Version, map[string]interface{}{
		"status": status,
	}); err != nil {
		return nil, err
	}

	return p.caseRepo.FindByID(caseID)
}

// AddDocument implements CasePipeline.
func (p *casePipeline) AddDocument(ctx context.Context, userID, caseID uuid.UUID, doc models.CaseDocument) (*models.Case, error) {
	c, err := p.caseRepo.FindByIDForUser(caseID, userID)
	if err != nil {
		return nil, err
	}

	docs := append(c.Documents, doc)
	if err := p.caseRepo.UpdateVersioned(caseID, c.Version, map[string]interface{}{
		"documents": docs,
	}); err != nil {
		return nil, err
	}

	return p.caseRepo.FindByID(caseID)
}
