package database

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type Database struct {
	db                 *gorm.DB
	projectRepo        *ProjectRepo
	portfolioRepo      *PortfolioRepo
	contactMessageRepo *ContactMessageRepo
	siteSettingsRepo   *SiteSettingsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		projectRepo:        NewProjectRepo(db),
		portfolioRepo:      NewPortfolioRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
		siteSettingsRepo:   NewSiteSettingsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) PortfolioRepo() *PortfolioRepo {
	return d.portfolioRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) SiteSettingsRepo() *SiteSettingsRepo {
	return d.siteSettingsRepo
}

// Ping checks that the connection is usable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type DashboardCounts struct {
	Projects    int64 `json:"projects"`
	Portfolios  int64 `json:"portfolios"`
	NewMessages int64 `json:"new_messages"`
}

// DashboardCounts runs the three admin dashboard counts concurrently.
func (d Database) DashboardCounts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := d.projectRepo.Count(ctx)
		counts.Projects = n
		return err
	})
	g.Go(func() error {
		n, err := d.portfolioRepo.Count(ctx)
		counts.Portfolios = n
		return err
	})
	g.Go(func() error {
		n, err := d.contactMessageRepo.CountByStatus(ctx, models.MessageStatusNew)
		counts.NewMessages = n
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardCounts{}, err
	}
	return counts, nil
}
