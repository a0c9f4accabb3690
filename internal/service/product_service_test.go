package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rfrnce/internal/constants"
)

func newTestProductService(env *serviceTestEnv, dispatcher EnrichmentDispatcher) *ProductService {
	return NewProductService(env.cartRepo, env.productRepo, dispatcher)
}

func TestProductServiceAddCreatesPendingAndDispatches(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Desks")
	dispatcher := &recordingDispatcher{}
	svc := newTestProductService(env, dispatcher)

	product, err := svc.Add(context.Background(), AddProductInput{UserID: user.ID, CartID: cart.ID, URL: " https://shop.example/desk "})
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	if product.Status != constants.ProductStatusPending || product.URL != "https://shop.example/desk" {
		t.Fatalf("unexpected product: %+v", product)
	}
	jobs := dispatcher.dispatched()
	if len(jobs) != 1 || jobs[0].ProductID != product.ID || jobs[0].URL != product.URL {
		t.Fatalf("unexpected dispatched jobs: %+v", jobs)
	}
}

func TestProductServiceAddValidatesURL(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Desks")
	svc := newTestProductService(env, &recordingDispatcher{})

	cases := []struct {
		url  string
		want error
	}{
		{url: "", want: ErrProductURLRequired},
		{url: "   ", want: ErrProductURLRequired},
		{url: "not a url", want: ErrInvalidURL},
		{url: "ftp://shop.example/desk", want: ErrInvalidURL},
		{url: "https://", want: ErrInvalidURL},
	}
	for _, tc := range cases {
		if _, err := svc.Add(context.Background(), AddProductInput{UserID: user.ID, CartID: cart.ID, URL: tc.url}); !errors.Is(err, tc.want) {
			t.Fatalf("url %q: expected %v, got %v", tc.url, tc.want, err)
		}
	}
}

func TestProductServiceAddGuards(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	other := env.seedUser(t, "u-2")
	cart := env.seedCart(t, user.ID, "Desks")
	frozen := env.seedCart(t, user.ID, "Frozen")
	env.freezeCart(t, frozen.ID)
	dispatcher := &recordingDispatcher{}
	svc := newTestProductService(env, dispatcher)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddProductInput{UserID: other.ID, CartID: cart.ID, URL: "https://shop.example/a"}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: frozen.ID, URL: "https://shop.example/a"}); !errors.Is(err, ErrCartFrozen) {
		t.Fatalf("expected ErrCartFrozen, got %v", err)
	}
	if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: cart.ID, URL: "https://shop.example/a"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: cart.ID, URL: "https://shop.example/a"}); !errors.Is(err, ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
	if len(dispatcher.dispatched()) != 1 {
		t.Fatalf("rejected adds must not dispatch")
	}
}

func TestProductServiceAddSameURLAcrossCarts(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	first := env.seedCart(t, user.ID, "First")
	second := env.seedCart(t, user.ID, "Second")
	svc := newTestProductService(env, &recordingDispatcher{})
	ctx := context.Background()

	for _, cartID := range []uint{first.ID, second.ID} {
		if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: cartID, URL: "https://shop.example/a"}); err != nil {
			t.Fatalf("same url in cart %d should be allowed: %v", cartID, err)
		}
	}
}

func TestProductServiceAddEnforcesLimit(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Full")
	svc := newTestProductService(env, &recordingDispatcher{})
	ctx := context.Background()

	for i := 0; i < constants.MaxProductsPerCart; i++ {
		if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: cart.ID, URL: fmt.Sprintf("https://shop.example/%d", i)}); err != nil {
			t.Fatalf("add product %d failed: %v", i, err)
		}
	}
	if _, err := svc.Add(ctx, AddProductInput{UserID: user.ID, CartID: cart.ID, URL: "https://shop.example/extra"}); !errors.Is(err, ErrProductLimitReached) {
		t.Fatalf("expected ErrProductLimitReached, got %v", err)
	}
	count, err := env.productRepo.CountByCart(cart.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != constants.MaxProductsPerCart {
		t.Fatalf("expected %d products, got %d", constants.MaxProductsPerCart, count)
	}
}

func TestProductServiceAddMarksFailedWhenDispatchFails(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Desks")
	svc := newTestProductService(env, &recordingDispatcher{err: errors.New("redis down")})

	product, err := svc.Add(context.Background(), AddProductInput{UserID: user.ID, CartID: cart.ID, URL: "https://shop.example/a"})
	if err != nil {
		t.Fatalf("add should still succeed: %v", err)
	}
	if product.Status != constants.ProductStatusFailed {
		t.Fatalf("expected failed status in response, got %s", product.Status)
	}
	if stored := env.reloadProduct(t, product.ID); stored.Status != constants.ProductStatusFailed {
		t.Fatalf("expected failed status in store, got %s", stored.Status)
	}
}

func TestProductServiceDelete(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	cart := env.seedCart(t, user.ID, "Desks")
	other := env.seedCart(t, user.ID, "Other")
	product := env.seedProduct(t, cart.ID, "https://shop.example/a", constants.ProductStatusComplete)
	env.freezeCart(t, cart.ID)
	svc := newTestProductService(env, nil)

	if err := svc.Delete(user.ID, other.ID, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound from another cart, got %v", err)
	}
	if err := svc.Delete(user.ID, cart.ID, product.ID); err != nil {
		t.Fatalf("delete from frozen cart should be allowed: %v", err)
	}
	if env.reloadProduct(t, product.ID) != nil {
		t.Fatalf("product should be gone")
	}
}

func TestProductServiceMoveKeepsStatus(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	source := env.seedCart(t, user.ID, "Source")
	target := env.seedCart(t, user.ID, "Target")
	product := env.seedProduct(t, source.ID, "https://shop.example/a", constants.ProductStatusComplete)
	svc := newTestProductService(env, nil)

	if err := svc.Move(MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: product.ID, TargetCartID: target.ID}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	moved := env.reloadProduct(t, product.ID)
	if moved.CartID != target.ID || moved.Status != constants.ProductStatusComplete || moved.Name == nil {
		t.Fatalf("unexpected moved product: %+v", moved)
	}
}

func TestProductServiceMoveCheckOrder(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	intruder := env.seedUser(t, "u-2")
	source := env.seedCart(t, user.ID, "Source")
	target := env.seedCart(t, user.ID, "Target")
	frozen := env.seedCart(t, user.ID, "Frozen")
	foreign := env.seedCart(t, intruder.ID, "Foreign")
	env.freezeCart(t, frozen.ID)
	product := env.seedProduct(t, source.ID, "https://shop.example/a", constants.ProductStatusPending)
	svc := newTestProductService(env, nil)

	cases := []struct {
		name  string
		input MoveProductInput
		want  error
	}{
		{name: "missing target", input: MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: product.ID}, want: ErrInvalidTargetCart},
		{name: "foreign source", input: MoveProductInput{UserID: intruder.ID, CartID: source.ID, ProductID: product.ID, TargetCartID: foreign.ID}, want: ErrCartNotFound},
		{name: "foreign target", input: MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: product.ID, TargetCartID: foreign.ID}, want: ErrTargetCartNotFound},
		{name: "frozen target before missing product", input: MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: 9999, TargetCartID: frozen.ID}, want: ErrTargetCartFrozen},
		{name: "missing product", input: MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: 9999, TargetCartID: target.ID}, want: ErrProductNotFound},
	}
	for _, tc := range cases {
		if err := svc.Move(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestProductServiceMoveRejectsDuplicateInTarget(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	source := env.seedCart(t, user.ID, "Source")
	target := env.seedCart(t, user.ID, "Target")
	product := env.seedProduct(t, source.ID, "https://shop.example/a", constants.ProductStatusComplete)
	env.seedProduct(t, target.ID, "https://shop.example/a", constants.ProductStatusComplete)
	svc := newTestProductService(env, nil)

	err := svc.Move(MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: product.ID, TargetCartID: target.ID})
	if !errors.Is(err, ErrDuplicateProductInTarget) {
		t.Fatalf("expected ErrDuplicateProductInTarget, got %v", err)
	}
	if stayed := env.reloadProduct(t, product.ID); stayed.CartID != source.ID {
		t.Fatalf("product should stay in source cart, got cart %d", stayed.CartID)
	}
}

func TestProductServiceMoveRejectsFullTarget(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.seedUser(t, "u-1")
	source := env.seedCart(t, user.ID, "Source")
	target := env.seedCart(t, user.ID, "Target")
	product := env.seedProduct(t, source.ID, "https://shop.example/a", constants.ProductStatusComplete)
	for i := 0; i < constants.MaxProductsPerCart; i++ {
		env.seedProduct(t, target.ID, fmt.Sprintf("https://shop.example/t%d", i), constants.ProductStatusComplete)
	}
	svc := newTestProductService(env, nil)

	err := svc.Move(MoveProductInput{UserID: user.ID, CartID: source.ID, ProductID: product.ID, TargetCartID: target.ID})
	if !errors.Is(err, ErrTargetCartFull) {
		t.Fatalf("expected ErrTargetCartFull, got %v", err)
	}
}
