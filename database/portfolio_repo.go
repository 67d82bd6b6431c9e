package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type PortfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) *PortfolioRepo {
	return &PortfolioRepo{db}
}

// ListAll returns every portfolio, newest first.
func (r *PortfolioRepo) ListAll(ctx context.Context) ([]models.ClientPortfolio, error) {
	var portfolios []models.ClientPortfolio
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&portfolios).Error
	for i := range portfolios {
		portfolios[i].Normalize()
	}
	if portfolios == nil {
		portfolios = []models.ClientPortfolio{}
	}
	return portfolios, err
}

func (r *PortfolioRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ClientPortfolio, error) {
	var portfolio models.ClientPortfolio
	if err := r.db.WithContext(ctx).First(&portfolio, "id = ?", id).Error; err != nil {
		return nil, err
	}
	portfolio.Normalize()
	return &portfolio, nil
}

func (r *PortfolioRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.ClientPortfolio, error) {
	var portfolio models.ClientPortfolio
	err := r.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&portfolio).Error
	if err != nil {
		return nil, err
	}
	portfolio.Normalize()
	return &portfolio, nil
}

// Links returns the portfolio's link rows in ascending sort order.
func (r *PortfolioRepo) Links(ctx context.Context, portfolioID uuid.UUID) ([]models.PortfolioProject, error) {
	var links []models.PortfolioProject
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("sort_order ASC").
		Find(&links).Error
	return links, err
}

// LinkedProjects returns the projects shown on a portfolio in sort order.
func (r *PortfolioRepo) LinkedProjects(ctx context.Context, portfolioID uuid.UUID, publishedOnly bool) ([]models.Project, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("projects.*").
		Joins("JOIN portfolio_projects ON portfolio_projects.project_id = projects.id").
		Where("portfolio_projects.portfolio_id = ?", portfolioID)
	if publishedOnly {
		query = query.Where("projects.published = ?", true)
	}

	var projects []models.Project
	err := query.Order("portfolio_projects.sort_order ASC").Find(&projects).Error
	return normalizeProjects(projects), err
}

// Save writes the portfolio row and replaces its link rows in one transaction,
// so a failed insert leaves the previous links in place.
func (r *PortfolioRepo) Save(ctx context.Context, portfolio *models.ClientPortfolio, projectIDs []uuid.UUID, isNew bool) error {
	portfolio.Normalize()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isNew {
			if err := tx.Omit("Links").Create(portfolio).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(portfolio).
				Select("*").
				Omit("id", "created_at", "Links").
				Updates(portfolio)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return replaceLinks(tx, portfolio.ID, models.NewPortfolioLinks(portfolio.ID, projectIDs))
	})
}

// ReplaceLinks swaps the link rows of an existing portfolio atomically.
func (r *PortfolioRepo) ReplaceLinks(ctx context.Context, portfolioID uuid.UUID, links []models.PortfolioProject) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ClientPortfolio{}).Where("id = ?", portfolioID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceLinks(tx, portfolioID, links)
	})
}

func replaceLinks(tx *gorm.DB, portfolioID uuid.UUID, links []models.PortfolioProject) error {
	if len(links) > 0 {
		ids := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			ids = append(ids, link.ProjectID)
		}
		var found int64
		if err := tx.Model(&models.Project{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(ids)) {
			return errs.NewInvalidFieldError("project_ids", "references a project that does not exist")
		}
	}

	if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&models.PortfolioProject{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

func (r *PortfolioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.PortfolioProject{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ClientPortfolio{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PortfolioRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClientPortfolio{}).Count(&count).Error
	return count, err
}
