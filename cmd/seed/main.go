package main

import (
	"errors"
	"flag"
	"time"

	"github.com/rfrnce/internal/config"
	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"github.com/google/uuid"
)

type seedProduct struct {
	URL        string
	Name       string
	Price      string
	Brand      string
	Dimensions string
	Reviews    models.Reviews
}

type seedCart struct {
	Name     string
	Active   bool
	Products []seedProduct
}

var demoCarts = []seedCart{
	{
		Name:   "Standing Desks",
		Active: true,
		Products: []seedProduct{
			{
				URL:        "https://www.example-shop.com/products/flexi-desk-pro",
				Name:       "FlexiDesk Pro Electric Standing Desk",
				Price:      "$549.00",
				Brand:      "FlexiDesk",
				Dimensions: "60 x 30 in",
				Reviews: models.Reviews{
					{URL: "https://www.reddit.com/r/StandingDesk/comments/demo1", Title: "FlexiDesk Pro after a year", Snippet: "Motor is quiet, slight wobble at full height.", Source: constants.ReviewSourceReddit},
				},
			},
			{
				URL:        "https://www.example-shop.com/products/uplift-v2",
				Name:       "Uplift V2 Standing Desk",
				Price:      "$699.00",
				Brand:      "Uplift",
				Dimensions: "72 x 30 in",
			},
		},
	},
	{
		Name: "Office Chairs",
	},
}

func main() {
	var rawUUID string
	flag.StringVar(&rawUUID, "uuid", "", "演示用户 UUID，留空则随机生成")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions("rfrnce-seed"))
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		_ = models.Close()
	}()

	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	parsed := uuid.New()
	if rawUUID != "" {
		var err error
		if parsed, err = uuid.Parse(rawUUID); err != nil {
			stdLog.Fatalf("Invalid uuid %q: %v", rawUUID, err)
		}
	}

	userRepo := repository.NewUserRepository(models.DB)
	cartRepo := repository.NewCartRepository(models.DB)
	productRepo := repository.NewProductRepository(models.DB)

	user, err := userRepo.CreateIfAbsent(&models.User{UUID: parsed.String()})
	if err != nil {
		stdLog.Fatalf("Failed to create user: %v", err)
	}

	for _, def := range demoCarts {
		cart, err := ensureCart(cartRepo, user.ID, def)
		if err != nil {
			stdLog.Fatalf("Failed to create cart %s: %v", def.Name, err)
		}
		for _, item := range def.Products {
			if err := ensureProduct(productRepo, cart.ID, item); err != nil {
				stdLog.Fatalf("Failed to create product %s: %v", item.URL, err)
			}
		}
	}

	logger.Infow("seed_completed", "user_id", user.ID, "uuid", user.UUID, "carts", len(demoCarts))
}

func ensureCart(repo *repository.GormCartRepository, userID uint, def seedCart) (*models.Cart, error) {
	existing, err := repo.GetByUserAndName(userID, def.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	cart := &models.Cart{UserID: userID, Name: def.Name, IsActive: def.Active}
	if err := repo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func ensureProduct(repo *repository.GormProductRepository, cartID uint, item seedProduct) error {
	existing, err := repo.GetByCartAndURL(cartID, item.URL)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	product := &models.Product{CartID: cartID, URL: item.URL, Status: constants.ProductStatusPending}
	if err := repo.Create(product); err != nil {
		return err
	}
	updated, err := repo.CompleteEnrichment(product.ID, repository.ProductEnrichment{
		Name:       item.Name,
		Price:      item.Price,
		Brand:      optional(item.Brand),
		Dimensions: optional(item.Dimensions),
		Reviews:    item.Reviews,
		ScrapedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if !updated {
		return errors.New("product left pending state before seeding completed")
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
