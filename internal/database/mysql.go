package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"property-manager/internal/models"
)

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(host, port, user, password, dbname string) (*GormStore, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

// NewGormStoreFromDB wraps an existing gorm.DB instance.
func NewGormStoreFromDB(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB returns the underlying gorm.DB instance
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (s *GormStore) InitSchema() error {
	return s.db.AutoMigrate(
		&models.Property{},
		&models.PropertyImage{},
		&models.DeleteLog{},
	)
}

func (s *GormStore) ListProperties() ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Order("created_at DESC, id DESC").Find(&properties).Error
	if err != nil {
		return nil, err
	}
	if err := s.loadImagesForAll(properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *GormStore) GetProperty(id string) (*models.Property, error) {
	var property models.Property
	err := s.db.Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	images, err := s.loadImages(id)
	if err != nil {
		return nil, err
	}
	property.Images = images
	return &property, nil
}

func (s *GormStore) CreateProperty(in *models.PropertyInput) (*models.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	property := in.ToProperty()
	property.ID = uuid.NewString()
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		return savePropertyImages(tx, property.ID, property.Images)
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *GormStore) UpdateProperty(id string, patch *models.PropertyPatch) (*models.Property, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var property models.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).First(&property)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if result.Error != nil {
			return result.Error
		}

		patch.Apply(&property)
		property.UpdatedAt = time.Now()
		if err := tx.Save(&property).Error; err != nil {
			return err
		}

		// Only rewrite the image rows when the patch actually carries
		// an images field.
		if patch.Images != nil {
			if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
			if err := savePropertyImages(tx, id, property.Images); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	images, err := s.loadImages(id)
	if err != nil {
		return nil, err
	}
	property.Images = images
	return &property, nil
}

func (s *GormStore) DeleteProperty(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		result := tx.Where("id = ?", id).First(&property)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Property{}, "id = ?", id).Error; err != nil {
			return err
		}

		entry := models.DeleteLog{
			PropertyID: property.ID,
			Title:      property.Title,
			DeletedAt:  time.Now(),
			Reason:     models.DeleteReasonManual,
		}
		return tx.Create(&entry).Error
	})
}

func (s *GormStore) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		StatusCounts:      make(map[models.PropertyStatus]int64),
		TypeCounts:        make(map[models.PropertyType]int64),
		PriceDistribution: models.PriceBuckets(),
	}

	if err := s.db.Model(&models.Property{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	for _, status := range []models.PropertyStatus{
		models.PropertyStatusAvailable,
		models.PropertyStatusSold,
		models.PropertyStatusRented,
	} {
		var count int64
		if err := s.db.Model(&models.Property{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.StatusCounts[status] = count
	}

	for _, typ := range []models.PropertyType{
		models.PropertyTypeApartment,
		models.PropertyTypeHouse,
		models.PropertyTypeCommercial,
	} {
		var count int64
		if err := s.db.Model(&models.Property{}).Where("type = ?", typ).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.TypeCounts[typ] = count
	}

	var sums struct {
		TotalPrice int64
		AvgArea    float64
	}
	err := s.db.Model(&models.Property{}).
		Select("COALESCE(SUM(price), 0) AS total_price, COALESCE(AVG(area), 0) AS avg_area").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	stats.TotalPrice = sums.TotalPrice
	stats.AverageArea = sums.AvgArea
	if stats.Total > 0 {
		stats.AveragePrice = stats.TotalPrice / stats.Total
	}

	for i := range stats.PriceDistribution {
		b := &stats.PriceDistribution[i]
		var count int64
		err := s.db.Model(&models.Property{}).
			Where("price >= ? AND price < ?", b.MinPrice, b.MaxPrice).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		b.Count = count
	}

	return stats, nil
}

func (s *GormStore) RecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC, id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (s *GormStore) PruneDeleteLogs(before time.Time) (int64, error) {
	result := s.db.Where("deleted_at < ?", before).Delete(&models.DeleteLog{})
	return result.RowsAffected, result.Error
}

// savePropertyImages inserts image rows preserving display order.
func savePropertyImages(tx *gorm.DB, propertyID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.PropertyImage, len(urls))
	for i, url := range urls {
		images[i] = models.PropertyImage{
			PropertyID: propertyID,
			ImageURL:   url,
			SortOrder:  i,
		}
	}
	return tx.Create(&images).Error
}

func (s *GormStore) loadImages(propertyID string) ([]string, error) {
	var images []models.PropertyImage
	err := s.db.Where("property_id = ?", propertyID).Order("sort_order ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	return urls, nil
}

// loadImagesForAll fetches image rows for every listed property in one query.
func (s *GormStore) loadImagesForAll(properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	ids := make([]string, len(properties))
	for i := range properties {
		ids[i] = properties[i].ID
	}

	var images []models.PropertyImage
	err := s.db.Where("property_id IN ?", ids).Order("property_id, sort_order ASC").Find(&images).Error
	if err != nil {
		return err
	}

	byProperty := make(map[string][]string)
	for _, img := range images {
		byProperty[img.PropertyID] = append(byProperty[img.PropertyID], img.ImageURL)
	}
	for i := range properties {
		properties[i].Images = byProperty[properties[i].ID]
	}
	return nil
}
