package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pointline/pointline-api/internal/access"
	"github.com/pointline/pointline-api/internal/domain/customer"
	"github.com/pointline/pointline-api/internal/domain/user"
	"github.com/pointline/pointline-api/internal/pkg/jwt"
	"github.com/pointline/pointline-api/internal/pkg/password"
)

type fakeUserRepo struct {
	created *user.User
	byEmail *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.created = u
	f.byEmail = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byEmail != nil && f.byEmail.ID == id {
		return f.byEmail, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.byEmail != nil && f.byEmail.Email == email {
		return f.byEmail, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (f *fakeUserRepo) SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error {
	return nil
}

type fakeCustomerLookup struct {
	record *customer.Customer
}

func (f *fakeCustomerLookup) GetByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*customer.Customer, error) {
	if f.record != nil && f.record.UserID == userID && f.record.TenantID == tenantID {
		return f.record, nil
	}
	return nil, customer.ErrNotFound
}

func newTestService(repo *fakeUserRepo, customers *fakeCustomerLookup) *Service {
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, customers, jwtSvc, nil)
}

func tenantIDString() (*string, uuid.UUID) {
	id := uuid.New()
	s := id.String()
	return &s, id
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, &fakeCustomerLookup{})
	tid, tenantID := tenantIDString()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Staff@Example.com",
		Password: "sekret-password",
		Role:     access.RoleTenantStaff,
		TenantID: tid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair not issued")
	}
	if repo.created == nil {
		t.Fatal("user not created")
	}
	if repo.created.Email != "staff@example.com" {
		t.Errorf("email not normalized: %q", repo.created.Email)
	}
	if repo.created.TenantID == nil || *repo.created.TenantID != tenantID {
		t.Error("tenant binding not stored")
	}
	if !password.Verify("sekret-password", repo.created.PasswordHash) {
		t.Error("stored hash does not verify")
	}
}

func TestRegisterRejectsPlatformRoot(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakeCustomerLookup{})
	tid, _ := tenantIDString()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "root@example.com",
		Password: "sekret-password",
		Role:     access.RolePlatformRoot,
		TenantID: tid,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("error = %v, want ErrInvalidRole", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, &fakeCustomerLookup{})
	tid, _ := tenantIDString()

	req := &RegisterRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
		Role:     access.RoleTenantStaff,
		TenantID: tid,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, &fakeCustomerLookup{})
	tid, _ := tenantIDString()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
		Role:     access.RoleTenantStaff,
		TenantID: tid,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("access token not issued")
	}

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginCarriesCustomerClaim(t *testing.T) {
	repo := &fakeUserRepo{}
	customers := &fakeCustomerLookup{}
	svc := newTestService(repo, customers)
	tid, tenantID := tenantIDString()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "member@example.com",
		Password: "sekret-password",
		Role:     access.RoleCustomer,
		TenantID: tid,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	customers.record = &customer.Customer{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   repo.created.ID,
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "member@example.com",
		Password: "sekret-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	claims, err := jwtSvc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.CustomerID == nil || *claims.CustomerID != customers.record.ID {
		t.Error("customer id claim missing")
	}
	if claims.TenantID == nil || *claims.TenantID != tenantID {
		t.Error("tenant id claim missing")
	}
}

func TestLoginDisabledUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, &fakeCustomerLookup{})
	tid, _ := tenantIDString()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
		Role:     access.RoleTenantStaff,
		TenantID: tid,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.created.IsDisabled = true

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
	})
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("error = %v, want ErrUserDisabled", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, &fakeCustomerLookup{})
	tid, _ := tenantIDString()

	first, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "staff@example.com",
		Password: "sekret-password",
		Role:     access.RoleTenantStaff,
		TenantID: tid,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("access token not issued on refresh")
	}

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("error = %v, want ErrInvalidRefresh", err)
	}
}
