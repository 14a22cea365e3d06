package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NoahOriano/see-your-future/internal/bank"
	"github.com/NoahOriano/see-your-future/internal/cache"
	"github.com/NoahOriano/see-your-future/internal/config"
	"github.com/NoahOriano/see-your-future/internal/model"
	"github.com/NoahOriano/see-your-future/internal/repository"
)

var (
	// ErrSessionBusy means an advance or generation is already in flight;
	// the session rejects concurrent mutation until it settles.
	ErrSessionBusy = errors.New("session is busy")

	// ErrQuestionNotFound means the answer targets a question no round holds.
	ErrQuestionNotFound = errors.New("question not found in session")

	// ErrNoResult means the operation needs a generated result first.
	ErrNoResult = errors.New("session has no generated result yet")

	// ErrNoImage means the operation needs an attached image first.
	ErrNoImage = errors.New("session has no attached image")
)

// SessionService orchestrates the questionnaire lifecycle: session creation,
// answer recording, round advancement, and the terminal generation pipeline
// (narrative, illustration, narration).
type SessionService struct {
	sessionRepo  repository.SessionRepository
	bankRepo     repository.BankRepository
	sessionCache cache.SessionCache
	selector     *SelectorService
	generator    *GeneratorService
	future       *FutureService
	image        *ImageService
	tts          *TTSService
	broadcaster  Broadcaster
	engineCfg    config.EngineConfig
	logger       *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	bankRepo repository.BankRepository,
	sessionCache cache.SessionCache,
	selector *SelectorService,
	generator *GeneratorService,
	future *FutureService,
	image *ImageService,
	tts *TTSService,
	engineCfg config.EngineConfig,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		bankRepo:     bankRepo,
		sessionCache: sessionCache,
		selector:     selector,
		generator:    generator,
		future:       future,
		image:        image,
		tts:          tts,
		engineCfg:    engineCfg,
		logger:       logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateSession starts a new session with the standard round-1 question set.
func (s *SessionService) CreateSession(ctx context.Context) (*model.Session, error) {
	now := time.Now()
	session := &model.Session{
		ID:     uuid.New().String(),
		Status: model.SessionAnswering,
		Rounds: []model.QuestionRound{
			{
				RoundNumber: 1,
				Label:       model.RoundLabel(1),
				Source:      model.SourceStandard,
				Questions:   bank.StandardRound1(),
			},
		},
		CurrentRound: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.cacheSet(ctx, session)

	return session, nil
}

// GetSession loads a session, preferring the cache.
func (s *SessionService) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if cached, err := s.sessionCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, session)

	return session, nil
}

// RecordAnswer stores the answer value on the addressed question. Answers may
// be revised any number of times while the session is answering.
func (s *SessionService) RecordAnswer(ctx context.Context, sessionID, questionID, value string) (*model.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionAnswering {
		return nil, ErrSessionBusy
	}

	question := session.FindQuestion(questionID)
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	question.Answer = value

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AdvanceRound closes the current round and produces the next one. Round 2
// is selected from the prebuilt bank; later rounds are generated from the
// transcript. Past the configured last round this returns terminal=true and
// produces nothing.
func (s *SessionService) AdvanceRound(ctx context.Context, sessionID string) (*model.AdvanceRoundResponse, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionAnswering {
		return nil, ErrSessionBusy
	}

	last := session.LastRound()
	if last == nil {
		return nil, errors.New("session has no rounds")
	}

	next := last.RoundNumber + 1
	if next > s.engineCfg.MaxRounds {
		return &model.AdvanceRoundResponse{Terminal: true}, nil
	}

	session.Status = model.SessionAdvancing
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	var round *model.QuestionRound
	if next == 2 {
		round, err = s.buildRound2(ctx, session)
		if err != nil {
			session.Status = model.SessionAnswering
			s.save(ctx, session)
			return nil, err
		}
	} else {
		round = s.generator.GenerateRound(ctx, session.Rounds, next)
	}

	session.Rounds = append(session.Rounds, *round)
	session.CurrentRound = len(session.Rounds) - 1
	session.Status = model.SessionAnswering
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "round_ready", round)
	}

	return &model.AdvanceRoundResponse{Round: round}, nil
}

func (s *SessionService) buildRound2(ctx context.Context, session *model.Session) (*model.QuestionRound, error) {
	candidates, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	round1 := &session.Rounds[0]
	questions := s.selector.SelectRound2(round1, candidates)

	return &model.QuestionRound{
		RoundNumber: 2,
		Label:       model.RoundLabel(2),
		Source:      model.SourcePrebuilt,
		Questions:   questions,
	}, nil
}

// GenerateResult synthesizes (or regenerates) the future narrative from the
// full transcript. The session becomes complete once a result exists.
func (s *SessionService) GenerateResult(ctx context.Context, sessionID string) (*model.FutureResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionAdvancing || session.Status == model.SessionGenerating {
		return nil, ErrSessionBusy
	}

	session.Status = model.SessionGenerating
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	result := s.future.GenerateFuture(ctx, session.Rounds, session.Image)

	session.Result = result
	session.Status = model.SessionComplete
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "result_ready", result)
	}

	return result, nil
}

// AttachImage stores the subject photo on the session. Any previous
// description is discarded since it no longer matches the photo.
func (s *SessionService) AttachImage(ctx context.Context, sessionID, imageBase64, mimeType string) (*model.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if imageBase64 == "" {
		return nil, errors.New("empty image payload")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	session.Image = &model.AttachedImage{
		Base64:   imageBase64,
		MimeType: mimeType,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DescribeImage runs the vision model over the attached photo and stores the
// resulting description for later prompt building.
func (s *SessionService) DescribeImage(ctx context.Context, sessionID string) (string, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Image == nil {
		return "", ErrNoImage
	}

	description, err := s.image.DescribeImage(ctx, session.Image)
	if err != nil {
		return "", err
	}

	session.Image.Description = description
	if err := s.save(ctx, session); err != nil {
		return "", err
	}
	return description, nil
}

// GenerateImage renders an illustration of the generated future, optionally
// anchored on the attached photo, and stores its URL on the session.
func (s *SessionService) GenerateImage(ctx context.Context, sessionID string) (string, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Result == nil {
		return "", ErrNoResult
	}

	url, err := s.image.GenerateFutureImage(ctx, session.Result.Description, session.Image)
	if err != nil {
		return "", err
	}

	session.ImageURL = url
	if err := s.save(ctx, session); err != nil {
		return "", err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "image_ready", &model.ImageResponse{URL: url})
	}

	return url, nil
}

// Narrate synthesizes speech for the generated narrative.
func (s *SessionService) Narrate(ctx context.Context, sessionID, voiceID string) (string, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Result == nil {
		return "", ErrNoResult
	}

	audio, err := s.tts.Synthesize(ctx, session.Result.Description, voiceID)
	if err != nil {
		return "", err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "narration_ready", &model.NarrationResponse{AudioBase64: audio})
	}

	return audio, nil
}

// Reset returns the session to a fresh round-1 state, dropping all answers,
// the attached image, and any generated result.
func (s *SessionService) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = model.SessionAnswering
	session.Rounds = []model.QuestionRound{
		{
			RoundNumber: 1,
			Label:       model.RoundLabel(1),
			Source:      model.SourceStandard,
			Questions:   bank.StandardRound1(),
		},
	}
	session.CurrentRound = 0
	session.Image = nil
	session.Result = nil
	session.ImageURL = ""

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	// Tell listeners the session restarted, then drop them; stale clients
	// holding pre-reset state must reconnect.
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "session_reset", session)
		s.broadcaster.DisconnectSession(session.ID)
	}

	return session, nil
}

// save persists to Mongo and refreshes the cache. Cache failures are logged
// but never fail the operation.
func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.cacheSet(ctx, session)
	return nil
}

func (s *SessionService) cacheSet(ctx context.Context, session *model.Session) {
	if err := s.sessionCache.Set(ctx, session); err != nil {
		s.logger.Warn("session cache write failed", zap.String("sessionId", session.ID), zap.Error(err))
	}
}
