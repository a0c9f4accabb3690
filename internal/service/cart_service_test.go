package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rfrnce/internal/constants"
	"github.com/rfrnce/internal/models"
)

func newTestCartService(env *serviceTestEnv) *CartService {
	return NewCartService(env.cartRepo, env.productRepo, env.userRepo)
}

func TestCartServiceCreateDefaultsName(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	svc := newTestCartService(env)

	cart, err := svc.Create(CreateCartInput{UserID: user.ID, Name: "   "})
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if cart.Name != constants.DefaultCartName {
		t.Fatalf("expected default name, got %q", cart.Name)
	}
	if cart.IsActive || cart.IsFrozen || cart.ReportCount != 0 || cart.ProductCount != 0 {
		t.Fatalf("unexpected new cart state: %+v", cart)
	}
}

func TestCartServiceCreateEnforcesLimit(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	svc := newTestCartService(env)

	for i := 0; i < constants.MaxCartsPerUser; i++ {
		if _, err := svc.Create(CreateCartInput{UserID: user.ID, Name: fmt.Sprintf("Cart %d", i)}); err != nil {
			t.Fatalf("create cart %d failed: %v", i, err)
		}
	}
	if _, err := svc.Create(CreateCartInput{UserID: user.ID, Name: "One too many"}); !errors.Is(err, ErrCartLimitReached) {
		t.Fatalf("expected ErrCartLimitReached, got %v", err)
	}
	count, err := env.cartRepo.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != constants.MaxCartsPerUser {
		t.Fatalf("expected %d carts, got %d", constants.MaxCartsPerUser, count)
	}
}

func TestCartServiceCreateRejectsDuplicateAndLongName(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	other := env.seedUser(t, "u-2")
	svc := newTestCartService(env)

	if _, err := svc.Create(CreateCartInput{UserID: user.ID, Name: "Desks"}); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := svc.Create(CreateCartInput{UserID: user.ID, Name: "Desks"}); !errors.Is(err, ErrCartNameExists) {
		t.Fatalf("expected ErrCartNameExists, got %v", err)
	}
	if _, err := svc.Create(CreateCartInput{UserID: other.ID, Name: "Desks"}); err != nil {
		t.Fatalf("name should be unique per user only: %v", err)
	}
	if _, err := svc.Create(CreateCartInput{UserID: user.ID, Name: strings.Repeat("x", constants.MaxCartNameLength+1)}); !errors.Is(err, ErrInvalidCartName) {
		t.Fatalf("expected ErrInvalidCartName, got %v", err)
	}
}

func TestCartServiceUpdateKeepsSingleActiveCart(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	first := env.seedCart(t, user.ID, "First")
	second := env.seedCart(t, user.ID, "Second")
	env.seedProduct(t, second.ID, "https://shop.example/a", constants.ProductStatusPending)
	svc := newTestCartService(env)
	active := true

	if _, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: first.ID, IsActive: &active}); err != nil {
		t.Fatalf("activate first failed: %v", err)
	}
	updated, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: second.ID, IsActive: &active})
	if err != nil {
		t.Fatalf("activate second failed: %v", err)
	}
	if !updated.IsActive || updated.ProductCount != 1 {
		t.Fatalf("unexpected updated cart: %+v", updated)
	}
	carts, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list carts failed: %v", err)
	}
	activeCount := 0
	for _, cart := range carts {
		if cart.IsActive {
			activeCount++
			if cart.ID != second.ID {
				t.Fatalf("wrong active cart: %d", cart.ID)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active cart, got %d", activeCount)
	}
}

func TestCartServiceUpdateRename(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Chairs")
	env.seedCart(t, user.ID, "Lamps")
	svc := newTestCartService(env)

	taken := "Lamps"
	if _, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: cart.ID, Name: &taken}); !errors.Is(err, ErrCartNameExists) {
		t.Fatalf("expected ErrCartNameExists, got %v", err)
	}
	blank := "  "
	if _, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: cart.ID, Name: &blank}); !errors.Is(err, ErrInvalidCartName) {
		t.Fatalf("expected ErrInvalidCartName, got %v", err)
	}
	same := "Chairs"
	if _, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: cart.ID, Name: &same}); err != nil {
		t.Fatalf("keeping the same name should succeed: %v", err)
	}
	renamed := "Office chairs"
	updated, err := svc.Update(UpdateCartInput{UserID: user.ID, CartID: cart.ID, Name: &renamed})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if updated.Name != renamed {
		t.Fatalf("unexpected name: %s", updated.Name)
	}
}

func TestCartServiceOwnershipMissesAreNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.seedUser(t, "u-1")
	intruder := env.seedUser(t, "u-2")
	cart := env.seedCart(t, owner.ID, "Private")
	svc := newTestCartService(env)

	name := "Hijacked"
	if _, err := svc.Update(UpdateCartInput{UserID: intruder.ID, CartID: cart.ID, Name: &name}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for foreign cart, got %v", err)
	}
	if err := svc.Delete(intruder.ID, cart.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(owner.ID, 9999); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for missing cart, got %v", err)
	}
}

func TestCartServiceDeleteCascades(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Doomed")
	product := env.seedProduct(t, cart.ID, "https://shop.example/a", constants.ProductStatusComplete)
	if err := env.reportRepo.Upsert(&models.Report{CartID: cart.ID, Content: "<p>x</p>"}); err != nil {
		t.Fatalf("seed report failed: %v", err)
	}
	svc := newTestCartService(env)

	if err := svc.Delete(user.ID, cart.ID); err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}
	if env.reloadProduct(t, product.ID) != nil {
		t.Fatalf("product should be deleted with cart")
	}
	report, err := env.reportRepo.GetByCart(cart.ID)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if report != nil {
		t.Fatalf("report should be deleted with cart")
	}
}
