package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/integration/exa"
	"github.com/rfrnce/internal/integration/firecrawl"
	"github.com/rfrnce/internal/integration/gemini"
	"github.com/rfrnce/internal/models"
	"github.com/rfrnce/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    *repository.GormUserRepository
	cartRepo    *repository.GormCartRepository
	productRepo *repository.GormProductRepository
	reportRepo  *repository.GormReportRepository
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return &serviceTestEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		cartRepo:    repository.NewCartRepository(db),
		productRepo: repository.NewProductRepository(db),
		reportRepo:  repository.NewReportRepository(db),
	}
}

func (e *serviceTestEnv) seedUser(t *testing.T, uuid string) *models.User {
	t.Helper()
	user := &models.User{UUID: uuid}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *serviceTestEnv) seedCart(t *testing.T, userID uint, name string) *models.Cart {
	t.Helper()
	cart := &models.Cart{UserID: userID, Name: name}
	if err := e.db.Create(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	return cart
}

func (e *serviceTestEnv) seedProduct(t *testing.T, cartID uint, url, status string) *models.Product {
	t.Helper()
	product := &models.Product{CartID: cartID, URL: url, Status: status}
	if status == constants.ProductStatusComplete {
		name := "Product " + url
		price := "$10.00"
		product.Name = &name
		product.Price = &price
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (e *serviceTestEnv) reloadProduct(t *testing.T, id uint) *models.Product {
	t.Helper()
	product, err := e.productRepo.GetByID(id)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product
}

func (e *serviceTestEnv) freezeCart(t *testing.T, cartID uint) {
	t.Helper()
	if err := e.db.Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]interface{}{"report_count": 3, "is_frozen": true}).Error; err != nil {
		t.Fatalf("freeze cart failed: %v", err)
	}
}

// recordingDispatcher 记录派发的任务
type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []EnrichmentJob
	err  error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, job EnrichmentJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func (d *recordingDispatcher) dispatched() []EnrichmentJob {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]EnrichmentJob(nil), d.jobs...)
}

type fakeExtractor struct {
	facts *firecrawl.ProductFacts
	err   error
	panic bool
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (*firecrawl.ProductFacts, error) {
	if f.panic {
		panic("extractor exploded")
	}
	return f.facts, f.err
}

type fakeSearcher struct {
	results []exa.ReviewResult
	calls   []string
}

func (f *fakeSearcher) SearchReviews(_ context.Context, productName string) []exa.ReviewResult {
	f.calls = append(f.calls, productName)
	if f.results == nil {
		return []exa.ReviewResult{}
	}
	return f.results
}

type fakeGenerator struct {
	content string
	err     error
	inputs  []gemini.ProductInput
	calls   int
}

func (f *fakeGenerator) GenerateReport(_ context.Context, products []gemini.ProductInput) (string, error) {
	f.calls++
	f.inputs = products
	return f.content, f.err
}

func strPtr(value string) *string {
	return &value
}
