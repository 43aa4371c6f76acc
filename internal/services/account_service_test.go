package services

import (
	"context"
	"errors"
	"testing"

	"negar/internal/models"
	"negar/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountStore) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func validRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:      "Ali Rezaei",
		Phone:     "+989123456789",
		Email:     "Ali@Example.com",
		Password:  "Abcdefg1",
		BrandName: "Negar Studio",
	}
}

func newTestService(store storage.AccountStore) *AccountService {
	return NewAccountService(store, zerolog.Nop())
}

func TestRegister_Success(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	store.On("FindByEmail", mock.Anything, "ali@example.com").Return(nil, storage.ErrNotFound)

	var created *models.Account
	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Account")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Account)
		}).
		Return(nil)

	summary, err := svc.Register(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Equal(t, models.StatusPending, summary.Status)
	assert.Equal(t, "ali@example.com", summary.Email, "email lowercased")
	assert.Equal(t, "09123456789", summary.Phone, "phone normalized")
	assert.NotEmpty(t, summary.ID)

	assert.NotNil(t, created)
	assert.Equal(t, 0, created.Credits)
	assert.NotEqual(t, "Abcdefg1", created.PasswordHash, "plaintext never persisted")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Abcdefg1")))

	store.AssertExpectations(t)
}

func TestRegister_MissingFieldBeforeFormatChecks(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	// The phone is also invalid, but the missing brand name must win because
	// the required-fields check runs first.
	req := validRequest()
	req.BrandName = ""
	req.Phone = "not-a-phone"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrFieldsRequired)
	store.AssertNotCalled(t, "FindByEmail")
}

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{"short name", func(r *models.RegisterRequest) { r.Name = "ab" }, ErrInvalidName},
		{"landline phone", func(r *models.RegisterRequest) { r.Phone = "02188776655" }, ErrInvalidPhone},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"weak password", func(r *models.RegisterRequest) { r.Password = "abcdefgh" }, ErrInvalidPassword},
		{"short brand", func(r *models.RegisterRequest) { r.BrandName = " x " }, ErrInvalidBrandName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockAccountStore)
			svc := newTestService(store)

			req := validRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			store.AssertNotCalled(t, "FindByEmail")
			store.AssertNotCalled(t, "Create")
		})
	}
}

func TestRegister_NameAndPhoneBothInvalid_NameWins(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	req := validRequest()
	req.Name = "ab"
	req.Phone = "bad"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestRegister_EmailTaken(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	existing := &models.Account{ID: "1", Email: "ali@example.com"}
	store.On("FindByEmail", mock.Anything, "ali@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
	store.AssertNotCalled(t, "Create")
}

func TestRegister_LookupErrorIsNotAvailability(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	dbErr := errors.New("connection reset")
	store.On("FindByEmail", mock.Anything, "ali@example.com").Return(nil, dbErr)

	_, err := svc.Register(context.Background(), validRequest())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, dbErr)
	store.AssertNotCalled(t, "Create", "a failed lookup must never fall through to insert")
}

func TestRegister_DuplicateOnInsertMapsToEmailTaken(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	store.On("FindByEmail", mock.Anything, "ali@example.com").Return(nil, storage.ErrNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(storage.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_InsertErrorPropagates(t *testing.T) {
	store := new(MockAccountStore)
	svc := newTestService(store)

	store.On("FindByEmail", mock.Anything, "ali@example.com").Return(nil, storage.ErrNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := svc.Register(context.Background(), validRequest())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}
