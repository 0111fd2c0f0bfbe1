package services

import (
	"errors"

	"gorm.io/gorm"

	"jobpilot/internal/dtos"
	"jobpilot/internal/models"
)

// ApplicationService is the record store: owner-scoped CRUD over
// application rows. Cross-owner ids surface as not-found, never forbidden.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func (s *ApplicationService) Create(userID string, req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	app := &models.Application{
		UserID:         userID,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		RecipientEmail: req.RecipientEmail,
		Status:         models.StatusPending,
	}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) GetByID(userID string, id uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.Where("user_id = ? AND id = ?", userID, id).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) List(userID string, skip, limit int) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.Where("user_id = ?", userID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

// ListByStatus returns the owner's records for one status in stable id order.
// The orchestrator relies on this ordering for its batch runs.
func (s *ApplicationService) ListByStatus(userID, status string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.Where("user_id = ? AND status = ?", userID, status).
		Order("id").
		Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) Update(userID string, id uint, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	app, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.JobTitle != nil {
		updates["job_title"] = *req.JobTitle
	}
	if req.JobDescription != nil {
		updates["job_description"] = *req.JobDescription
	}
	if req.RecipientEmail != nil {
		updates["recipient_email"] = *req.RecipientEmail
	}
	if len(updates) == 0 {
		return app, nil
	}
	if err := s.DB.Model(app).Updates(updates).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Delete(userID string, id uint) error {
	res := s.DB.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
