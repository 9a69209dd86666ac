package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/auth"
	"github.com/avolkov/storefront/internal/server/models"
	"github.com/avolkov/storefront/internal/server/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

const testBcryptCost = 4

type fakeUsersRepo struct {
	byEmail map[string]*models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, common.ErrEmailTaken
	}
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeProductsRepo struct {
	byID map[string]*models.Product
}

func (f *fakeProductsRepo) List(_ context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		if p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductsRepo) Find(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductsRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductsRepo) Update(_ context.Context, id, name, description string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductsRepo) SoftDelete(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok || p.DeletedAt != nil {
		return nil, common.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	cp := *p
	return &cp, nil
}

func (f *fakeProductsRepo) Restore(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok || p.DeletedAt == nil {
		return nil, common.ErrNotFound
	}
	p.DeletedAt = nil
	cp := *p
	return &cp, nil
}

func (f *fakeProductsRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type testEnv struct {
	server   *Server
	issuer   *auth.Issuer
	users    *fakeUsersRepo
	products *fakeProductsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	usersRepo := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	productsRepo := &fakeProductsRepo{byID: map[string]*models.Product{}}

	hasher := auth.NewBcryptHasher(testBcryptCost)
	issuer, err := auth.NewIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	table, err := auth.NewTable(auth.DefaultRules())
	require.NoError(t, err)
	gate := auth.NewGatekeeper(table, issuer, "/auth/signin", "/dashboard")

	verifier := auth.NewVerifier(usersRepo, hasher, 6, 2, logger)
	userService := services.NewUserService(usersRepo, verifier, issuer, hasher, 6, logger)
	productService := services.NewProductService(productsRepo, logger)

	return &testEnv{
		server:   NewServer(":0", logger, userService, productService, gate, time.Hour),
		issuer:   issuer,
		users:    usersRepo,
		products: productsRepo,
	}
}

func (e *testEnv) seedUser(t *testing.T, email, password string) {
	t.Helper()
	hash, err := auth.NewBcryptHasher(testBcryptCost).Hash(password)
	require.NoError(t, err)
	e.users.byEmail[email] = &models.User{ID: "u-1", Email: email, PasswordHash: hash}
}

func (e *testEnv) sessionCookie(t *testing.T, userID string) *apitest.Cookie {
	t.Helper()
	tok, err := e.issuer.Issue(userID)
	require.NoError(t, err)
	return apitest.NewCookie(SessionCookieName).Value(tok)
}

func TestGate_ProtectedPageRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/dashboard").
		Expect(t).
		Status(http.StatusTemporaryRedirect).
		Header("Location", "/auth/signin").
		End()
}

func TestGate_SignInPageRedirectsAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/auth/signin").
		Cookies(env.sessionCookie(t, "u-1")).
		Expect(t).
		Status(http.StatusTemporaryRedirect).
		Header("Location", "/dashboard").
		End()
}

func TestGate_PublicPageAllowsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/examples/seo").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestGate_ProtectedPageAllowsAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/dashboard").
		Cookies(env.sessionCookie(t, "u-1")).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestGate_UnknownPageFailsClosed(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/some/new/route").
		Expect(t).
		Status(http.StatusTemporaryRedirect).
		Header("Location", "/auth/signin").
		End()
}

func TestGate_ExpiredTokenRedirects(t *testing.T) {
	env := newTestEnv(t)

	// Minted already expired, beyond the leeway.
	past := time.Now().Add(-time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(past),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	apitest.New().
		Handler(env.server.Handler()).
		Get("/dashboard").
		Cookies(apitest.NewCookie(SessionCookieName).Value(tok)).
		Expect(t).
		Status(http.StatusTemporaryRedirect).
		Header("Location", "/auth/signin").
		End()
}

func TestSignIn_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@test.com", "secret1")

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signin").
		JSON(`{"email": "user@test.com", "password": "secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		CookiePresent(SessionCookieName).
		End()
}

func TestSignIn_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@test.com", "secret1")

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signin").
		JSON(`{"email": "user@test.com", "password": "wrong66"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestSignIn_UnknownUserReadsTheSame(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@test.com", "secret1")

	body := `{"success": false, "error": "Unauthorized", "message": "Invalid credentials"}`

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signin").
		JSON(`{"email": "user@test.com", "password": "wrong66"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(body).
		End()

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signin").
		JSON(`{"email": "nobody@test.com", "password": "secret1"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(body).
		End()
}

func TestSignIn_ThrottledAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@test.com", "secret1")

	for i := 0; i < 5; i++ {
		apitest.New().
			Handler(env.server.Handler()).
			Post("/auth/signin").
			JSON(`{"email": "user@test.com", "password": "wrong66"}`).
			Expect(t).
			Status(http.StatusUnauthorized).
			End()
	}

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signin").
		JSON(`{"email": "user@test.com", "password": "secret1"}`).
		Expect(t).
		Status(http.StatusTooManyRequests).
		HeaderPresent("Retry-After").
		End()
}

func TestRegister_SignsInImmediately(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/register").
		JSON(`{"name": "New User", "email": "new@test.com", "password": "secret1"}`).
		Expect(t).
		Status(http.StatusCreated).
		CookiePresent(SessionCookieName).
		End()
}

func TestRegister_DuplicateEmailReadsAsBadInput(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@test.com", "secret1")

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/register").
		JSON(`{"name": "Other", "email": "user@test.com", "password": "secret2"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestSignOut_ClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Post("/auth/signout").
		Cookies(env.sessionCookie(t, "u-1")).
		Expect(t).
		Status(http.StatusNoContent).
		End()
}

func TestProductsAPI_CreateAndFetch(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Post("/api/products").
		JSON(`{"name": "Widget", "description": "A widget"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	require.Len(t, env.products.byID, 1)
	var id string
	for k := range env.products.byID {
		id = k
	}

	apitest.New().
		Handler(env.server.Handler()).
		Get("/api/products/"+id).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestProductsAPI_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	apitest.New().
		Handler(env.server.Handler()).
		Post("/api/products").
		JSON(`{"name": "", "description": ""}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestProductsAPI_SoftDeletedIsGone(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	deleted := now.Add(-time.Minute)
	env.products.byID["p-1"] = &models.Product{
		ID: "p-1", Name: "Old", Description: "d",
		CreatedAt: now, UpdatedAt: now, DeletedAt: &deleted,
	}

	apitest.New().
		Handler(env.server.Handler()).
		Get("/api/products/p-1").
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().
		Handler(env.server.Handler()).
		Get("/api/products").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"success": true, "data": [], "message": "Products fetched successfully"}`).
		End()
}

func TestProductsAPI_Restore(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	deleted := now.Add(-time.Minute)
	env.products.byID["p-1"] = &models.Product{
		ID: "p-1", Name: "Old", Description: "d",
		CreatedAt: now, UpdatedAt: now, DeletedAt: &deleted,
	}

	apitest.New().
		Handler(env.server.Handler()).
		Post("/api/products/p-1/restore").
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(env.server.Handler()).
		Get("/api/products/p-1").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestProductsAPI_HardDelete(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	env.products.byID["p-1"] = &models.Product{
		ID: "p-1", Name: "Old", Description: "d", CreatedAt: now, UpdatedAt: now,
	}

	apitest.New().
		Handler(env.server.Handler()).
		Delete("/api/products/p-1").
		Query("hard", "true").
		Expect(t).
		Status(http.StatusOK).
		End()

	require.Empty(t, env.products.byID)
}
