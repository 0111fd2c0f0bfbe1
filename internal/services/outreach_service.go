package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobpilot/internal/models"
)

type RecordError struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

// stateError is an invalid-state rejection: the message is the exact string
// surfaced per record, while errors.Is still matches ErrInvalidState.
type stateError struct{ msg string }

func (e stateError) Error() string { return e.msg }
func (e stateError) Unwrap() error { return ErrInvalidState }

// coldStateCheck rejects records already past pending.
func coldStateCheck(app *models.Application) error {
	switch app.Status {
	case models.StatusSent:
		return stateError{msg: "Already sent"}
	case models.StatusFollowedUp:
		return stateError{msg: "Already followed up"}
	}
	return nil
}

// followupStateCheck rejects records that are not in sent.
func followupStateCheck(app *models.Application) error {
	switch app.Status {
	case models.StatusPending:
		return stateError{msg: "Not sent yet"}
	case models.StatusFollowedUp:
		return stateError{msg: "Already followed up"}
	}
	return nil
}

type ColdOutreachResult struct {
	Sent   []uint        `json:"sent"`
	Errors []RecordError `json:"errors"`
}

type FollowupResult struct {
	FollowedUp []uint        `json:"followed_up"`
	Errors     []RecordError `json:"errors"`
}

// OutreachService drives the outreach batches: select eligible records,
// generate a body, send it, and move the record's status forward. Each
// record's write-back is committed individually, so a crash mid-batch leaves
// already-sent records correctly marked and the rest still pending.
type OutreachService struct {
	DB        *gorm.DB
	Apps      *ApplicationService
	Resumes   *ResumeService
	Generator EmailGenerator
	Sender    EmailSender
	Logger    *zap.Logger

	grace time.Duration

	// One batch per owner at a time. The lock is held for the whole run
	// and released on every exit path.
	mu      sync.Mutex
	running map[string]bool
}

func NewOutreachService(db *gorm.DB, apps *ApplicationService, resumes *ResumeService,
	generator EmailGenerator, sender EmailSender, logger *zap.Logger, graceDays int) *OutreachService {
	return &OutreachService{
		DB:        db,
		Apps:      apps,
		Resumes:   resumes,
		Generator: generator,
		Sender:    sender,
		Logger:    logger,
		grace:     time.Duration(graceDays) * 24 * time.Hour,
		running:   map[string]bool{},
	}
}

func (s *OutreachService) acquire(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[userID] {
		return ErrBatchInProgress
	}
	s.running[userID] = true
	return nil
}

func (s *OutreachService) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, userID)
}

// StartColdOutreach acquires the owner's lock synchronously (so a concurrent
// trigger can be rejected immediately) and runs the batch in the background.
func (s *OutreachService) StartColdOutreach(userID string) error {
	if err := s.acquire(userID); err != nil {
		return err
	}
	go func() {
		defer s.release(userID)
		res, err := s.runColdOutreach(context.Background(), userID, nil)
		s.logBatch("cold outreach", userID, len(res.Sent), len(res.Errors), err)
	}()
	return nil
}

// StartFollowups is the background counterpart for the follow-up batch.
func (s *OutreachService) StartFollowups(userID string) error {
	if err := s.acquire(userID); err != nil {
		return err
	}
	go func() {
		defer s.release(userID)
		res, err := s.runFollowups(context.Background(), userID)
		s.logBatch("followups", userID, len(res.FollowedUp), len(res.Errors), err)
	}()
	return nil
}

func (s *OutreachService) logBatch(name, userID string, ok, failed int, err error) {
	if err != nil {
		s.Logger.Error(name+" batch failed",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.Logger.Info(name+" batch finished",
		zap.String("user_id", userID), zap.Int("succeeded", ok), zap.Int("failed", failed))
}

// RunColdOutreach processes every pending record for the owner.
func (s *OutreachService) RunColdOutreach(ctx context.Context, userID string) (*ColdOutreachResult, error) {
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)
	return s.runColdOutreach(ctx, userID, nil)
}

// SendSelected is cold outreach restricted to an explicit id list. Ids that
// are missing or already past pending are reported per record instead of
// being silently filtered out.
func (s *OutreachService) SendSelected(ctx context.Context, userID string, ids []uint) (*ColdOutreachResult, error) {
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)
	return s.runColdOutreach(ctx, userID, ids)
}

// runColdOutreach does the actual work; the caller holds the owner lock.
// With ids == nil it selects all pending records; otherwise it walks the
// explicit list, re-reading each record's state immediately before sending
// so a duplicated id is rejected on its second occurrence.
func (s *OutreachService) runColdOutreach(ctx context.Context, userID string, ids []uint) (*ColdOutreachResult, error) {
	res := &ColdOutreachResult{Sent: []uint{}, Errors: []RecordError{}}

	// Resolved once and reused for the whole batch; without it no record
	// can proceed, so failure here aborts the run.
	resumeText, err := s.Resumes.ResumeText(userID)
	if err != nil {
		return res, err
	}
	attachment := s.Resumes.AttachmentPath(userID)

	if ids == nil {
		apps, err := s.Apps.ListByStatus(userID, models.StatusPending)
		if err != nil {
			return res, err
		}
		for i := range apps {
			s.coldOne(ctx, &apps[i], resumeText, attachment, res)
		}
		return res, nil
	}

	for _, id := range ids {
		app, err := s.Apps.GetByID(userID, id)
		if errors.Is(err, ErrNotFound) {
			res.Errors = append(res.Errors, RecordError{ID: id, Error: "Not found"})
			continue
		}
		if err != nil {
			return res, err
		}
		if serr := coldStateCheck(app); serr != nil {
			res.Errors = append(res.Errors, RecordError{ID: id, Error: serr.Error()})
			continue
		}
		s.coldOne(ctx, app, resumeText, attachment, res)
	}
	return res, nil
}

// coldOne sends one record and folds the outcome into the batch result.
func (s *OutreachService) coldOne(ctx context.Context, app *models.Application, resumeText, attachment string, res *ColdOutreachResult) {
	if err := s.sendCold(ctx, app, resumeText, attachment); err != nil {
		s.Logger.Warn("cold email failed",
			zap.Uint("application_id", app.ID),
			zap.String("company", app.CompanyName),
			zap.Error(err))
		res.Errors = append(res.Errors, RecordError{ID: app.ID, Error: err.Error()})
		return
	}
	s.Logger.Info("cold email sent",
		zap.Uint("application_id", app.ID),
		zap.String("recipient", app.RecipientEmail))
	res.Sent = append(res.Sent, app.ID)
}

// sendCold generates, sends, and persists one record's transition to sent.
// On any failure the record is left untouched, still pending.
func (s *OutreachService) sendCold(ctx context.Context, app *models.Application, resumeText, attachment string) error {
	body, err := s.Generator.GenerateColdEmail(ctx, app.CompanyName, app.JobTitle, app.JobDescription, resumeText)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Excited by %s's Mission—Interested in the %s Role", app.CompanyName, app.JobTitle)
	if err := s.Sender.Send(app.RecipientEmail, subject, body, attachment); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.DB.Model(app).Updates(map[string]interface{}{
		"status":     models.StatusSent,
		"sent_at":    now,
		"email_body": body,
	}).Error
}

// RunFollowups processes every sent record older than the grace period.
func (s *OutreachService) RunFollowups(ctx context.Context, userID string) (*FollowupResult, error) {
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)
	return s.runFollowups(ctx, userID)
}

func (s *OutreachService) runFollowups(ctx context.Context, userID string) (*FollowupResult, error) {
	res := &FollowupResult{FollowedUp: []uint{}, Errors: []RecordError{}}

	resumeText, err := s.Resumes.ResumeText(userID)
	if err != nil {
		return res, err
	}
	attachment := s.Resumes.AttachmentPath(userID)

	cutoff := time.Now().UTC().Add(-s.grace)
	var apps []models.Application
	err = s.DB.Where("user_id = ? AND status = ? AND sent_at <= ?", userID, models.StatusSent, cutoff).
		Order("id").
		Find(&apps).Error
	if err != nil {
		return res, err
	}

	for i := range apps {
		app := &apps[i]
		if err := s.sendFollowup(ctx, app, resumeText, attachment); err != nil {
			s.Logger.Warn("followup failed",
				zap.Uint("application_id", app.ID),
				zap.String("company", app.CompanyName),
				zap.Error(err))
			res.Errors = append(res.Errors, RecordError{ID: app.ID, Error: err.Error()})
			continue
		}
		s.Logger.Info("followup sent",
			zap.Uint("application_id", app.ID),
			zap.String("recipient", app.RecipientEmail))
		res.FollowedUp = append(res.FollowedUp, app.ID)
	}
	return res, nil
}

// SendSelectedFollowups follows up an explicit id list. The grace period is
// not applied here: an explicit selection is the owner saying "now".
func (s *OutreachService) SendSelectedFollowups(ctx context.Context, userID string, ids []uint) (*FollowupResult, error) {
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)

	res := &FollowupResult{FollowedUp: []uint{}, Errors: []RecordError{}}

	resumeText, err := s.Resumes.ResumeText(userID)
	if err != nil {
		return res, err
	}
	attachment := s.Resumes.AttachmentPath(userID)

	for _, id := range ids {
		app, err := s.Apps.GetByID(userID, id)
		if errors.Is(err, ErrNotFound) {
			res.Errors = append(res.Errors, RecordError{ID: id, Error: "Not found"})
			continue
		}
		if err != nil {
			return res, err
		}
		if serr := followupStateCheck(app); serr != nil {
			res.Errors = append(res.Errors, RecordError{ID: id, Error: serr.Error()})
			continue
		}
		if err := s.sendFollowup(ctx, app, resumeText, attachment); err != nil {
			res.Errors = append(res.Errors, RecordError{ID: id, Error: err.Error()})
			continue
		}
		res.FollowedUp = append(res.FollowedUp, id)
	}
	return res, nil
}

// sendFollowup transitions one sent record to followed_up. The follow-up
// body goes to its own column; the cold-email body is never overwritten.
func (s *OutreachService) sendFollowup(ctx context.Context, app *models.Application, resumeText, attachment string) error {
	originalBody := ""
	if app.EmailBody != nil {
		originalBody = *app.EmailBody
	}

	body, err := s.Generator.GenerateFollowup(ctx, app.CompanyName, app.JobTitle, originalBody, resumeText)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Following up: %s Position at %s", app.JobTitle, app.CompanyName)
	if err := s.Sender.Send(app.RecipientEmail, subject, body, attachment); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.DB.Model(app).Updates(map[string]interface{}{
		"status":         models.StatusFollowedUp,
		"followed_up_at": now,
		"followup_body":  body,
	}).Error
}
