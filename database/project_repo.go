package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ListAll returns every project, most recently updated first.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&projects).Error
	return normalizeProjects(projects), err
}

// ListPublished returns published projects, newest first.
func (r *ProjectRepo) ListPublished(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&projects).Error
	return normalizeProjects(projects), err
}

// ListFeatured returns up to limit published featured projects, newest first.
func (r *ProjectRepo) ListFeatured(ctx context.Context, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("published = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return normalizeProjects(projects), err
}

// ListPublishedRefs returns the portfolio editor candidates ordered by title.
func (r *ProjectRepo) ListPublishedRefs(ctx context.Context) ([]models.ProjectRef, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Select("id", "title", "slug").
		Where("published = ?", true).
		Order("title ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	refs := make([]models.ProjectRef, 0, len(projects))
	for i := range projects {
		refs = append(refs, projects[i].Ref())
	}
	return refs, nil
}

// FindPublishedBySlug returns gorm.ErrRecordNotFound when no published project has slug.
func (r *ProjectRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	project.Normalize()
	return &project, nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	project.Normalize()
	return &project, nil
}

func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	project.Normalize()
	return r.db.WithContext(ctx).Create(project).Error
}

// Update writes the full field set of an existing project.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	project.Normalize()
	result := r.db.WithContext(ctx).
		Model(project).
		Select("*").
		Omit("id", "created_at").
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetFlags updates only the given flag columns of one project and returns the row.
func (r *ProjectRepo) SetFlags(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.Project, error) {
	var project models.Project
	result := r.db.WithContext(ctx).
		Model(&project).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.PortfolioProject{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}

func normalizeProjects(projects []models.Project) []models.Project {
	if projects == nil {
		return []models.Project{}
	}
	for i := range projects {
		projects[i].Normalize()
	}
	return projects
}
