package reports

import (
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepo interface {
	Create(report *models.SavedReport) error
	GetByID(id string) (*models.SavedReport, error)
	GetByName(name string) (*models.SavedReport, error)
	ListActive() ([]models.SavedReport, error)
	List(limit int) ([]models.SavedReport, error)
	Update(report *models.SavedReport) error
	Delete(id string) error
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(report *models.SavedReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepo) GetByID(id string) (*models.SavedReport, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	var report models.SavedReport
	err = r.db.First(&report, "id = ?", uid).Error
	return &report, err
}

func (r *reportRepo) GetByName(name string) (*models.SavedReport, error) {
	var report models.SavedReport
	err := r.db.Where("name = ?", name).First(&report).Error
	return &report, err
}

func (r *reportRepo) ListActive() ([]models.SavedReport, error) {
	var reports []models.SavedReport
	err := r.db.Where("is_active = ? AND schedule <> ''", true).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) List(limit int) ([]models.SavedReport, error) {
	var reports []models.SavedReport
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&reports).Error
	return reports, err
}

func (r *reportRepo) Update(report *models.SavedReport) error {
	return r.db.Save(report).Error
}

func (r *reportRepo) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.Delete(&models.SavedReport{}, "id = ?", uid).Error
}
