package services

import (
	"errors"
	"log"
	"path/filepath"

	"moodbrew-order-system/models"
	"moodbrew-order-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CatalogService owns the drink menu. Prices are resolved here when a
// line is added to the cart; the order pipeline treats them as final.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Resolve returns the published product for a cart add. Handlers use it
// to build the cart line with server-side prices.
func (s *CatalogService) Resolve(productID string) (*models.Product, error) {
	var p models.Product
	err := s.DB.Where("id = ? AND status = ?", productID, models.ProductStatusPublished).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublishedProducts lists the visible menu, optionally filtered by mood.
func (s *CatalogService) GetPublishedProducts(c *fiber.Ctx) error {
	q := s.DB.Where("status = ?", models.ProductStatusPublished)
	if mood := c.Query("mood"); mood != "" {
		q = q.Where("mood = ?", mood)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list products",
			"cause": err.Error(),
		})
	}
	return c.JSON(products)
}

// GetProductBySlug returns one published product.
func (s *CatalogService) GetProductBySlug(c *fiber.Ctx) error {
	var p models.Product
	err := s.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.ProductStatusPublished).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error", "cause": err.Error()})
	}
	return c.JSON(p)
}

// CreateProduct creates a new draft menu item (Admin only).
func (s *CatalogService) CreateProduct(c *fiber.Ctx) error {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Mood        string  `json:"mood"`
		BasePrice   float64 `json:"base_price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.BasePrice <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and a positive base_price are required"})
	}

	p := &models.Product{
		ID:        uuid.NewString(),
		Slug:      slug.Make(req.Name),
		Name:      req.Name,
		Mood:      req.Mood,
		BasePrice: req.BasePrice,
		Status:    models.ProductStatusDraft,
	}
	p.Description = req.Description

	if err := s.DB.Create(p).Error; err != nil {
		log.Printf("DB Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PublishProduct flips a draft product live (Admin only).
func (s *CatalogService) PublishProduct(c *fiber.Ctx) error {
	res := s.DB.Model(&models.Product{}).
		Where("id = ?", c.Params("id")).
		Update("status", models.ProductStatusPublished)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error", "cause": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "product published"})
}

// UploadProductImage uploads a product image to R2 and stores the public
// URL (Admin only).
func (s *CatalogService) UploadProductImage(c *fiber.Ctx) error {
	id := c.Params("id")

	var p models.Product
	if err := s.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
	}
	if imageFile.Size > 10*1024*1024 { // 10MB
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file too large (max 10MB)"})
	}

	ext := filepath.Ext(imageFile.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "products/" + uuid.NewString() + ext
	imageURL, err := utils.UploadFileToR2(imageFile, key)
	if err != nil {
		log.Printf("R2 upload failed for product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload image"})
	}

	oldURL := p.ImageURL
	if err := s.DB.Model(&p).Update("image_url", imageURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store image URL"})
	}

	// Best-effort cleanup of the replaced object.
	if oldURL != "" && oldURL != imageURL {
		if err := utils.DeleteFileFromR2(oldURL); err != nil {
			log.Printf("⚠️ Failed to delete old product image %s: %v", oldURL, err)
		}
	}

	return c.JSON(fiber.Map{"image_url": imageURL})
}

// defaultMenu seeds a small published menu so a fresh install has
// something to order.
var defaultMenu = []models.Product{
	{Name: "Cozy Cappuccino", Mood: "cozy", BasePrice: 4.5, Description: "Warm foam, warm heart."},
	{Name: "Sunrise Espresso", Mood: "energized", BasePrice: 3.0, Description: "A straight shot of morning."},
	{Name: "Calm Chamomile Latte", Mood: "calm", BasePrice: 5.0, Description: "Floral, soft, unhurried."},
	{Name: "Focus Cold Brew", Mood: "focused", BasePrice: 4.0, Description: "Slow-steeped, sharp-minded."},
}

// SeedMenu inserts the default drinks if the catalog is empty.
func (s *CatalogService) SeedMenu() error {
	var count int64
	if err := s.DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, p := range defaultMenu {
		p.ID = uuid.NewString()
		p.Slug = slug.Make(p.Name)
		p.Status = models.ProductStatusPublished
		if err := s.DB.Create(&p).Error; err != nil {
			return err
		}
	}
	log.Printf("🌱 Seeded %d menu items", len(defaultMenu))
	return nil
}
