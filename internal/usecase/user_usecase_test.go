package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/usecase"
	"github.com/onul/clinicdesk/internal/usecase/mocks"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByEmail(gomock.Any(), "desk@clinic.example").Return(nil, errors.New("not found"))
	userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	user, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "desk@clinic.example",
		Name:     "Front Desk",
		Password: "correct-horse",
		Role:     domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.HashedPassword != "" {
		t.Error("hashed password must not leak out of CreateUser")
	}

	if user.Role != domain.RoleStaff {
		t.Errorf("expected staff role, got %s", user.Role)
	}
}

func TestUserUseCase_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateUserInput
	}{
		{"bad email", usecase.CreateUserInput{Email: "not-an-email", Name: "X", Password: "longenough", Role: domain.RoleStaff}},
		{"short password", usecase.CreateUserInput{Email: "a@b.example", Name: "X", Password: "short", Role: domain.RoleStaff}},
		{"unknown role", usecase.CreateUserInput{Email: "a@b.example", Name: "X", Password: "longenough", Role: domain.Role("owner")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(ctrl), mocks.NewMockIDGenerator())

			if _, err := uc.CreateUser(context.Background(), tt.input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	stored := &domain.User{
		ID:             "u1",
		Email:          "desk@clinic.example",
		HashedPassword: string(hash),
		Role:           domain.RoleStaff,
		Active:         true,
	}

	tests := []struct {
		name     string
		email    string
		password string
		user     *domain.User
		repoErr  error
		wantErr  error
	}{
		{"valid credentials", "desk@clinic.example", "correct-horse", stored, nil, nil},
		{"wrong password", "desk@clinic.example", "wrong", stored, nil, domain.ErrUnauthorized},
		{"unknown email", "ghost@clinic.example", "correct-horse", nil, errors.New("not found"), domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := mocks.NewMockUserRepository(ctrl)
			userRepo.EXPECT().GetByEmail(gomock.Any(), tt.email).Return(tt.user, tt.repoErr)

			uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

			user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.ID != "u1" {
				t.Errorf("expected user u1, got %s", user.ID)
			}
		})
	}
}

func TestUserUseCase_Authenticate_InactiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByEmail(gomock.Any(), "old@clinic.example").Return(&domain.User{
		ID:     "u2",
		Email:  "old@clinic.example",
		Active: false,
	}, nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	if _, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "old@clinic.example",
		Password: "whatever",
	}); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestUserUseCase_CreateUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByEmail(gomock.Any(), "desk@clinic.example").Return(&domain.User{
		ID:    "u1",
		Email: "desk@clinic.example",
	}, nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	if _, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "desk@clinic.example",
		Name:     "Second Desk",
		Password: "longenough",
		Role:     domain.RoleStaff,
	}); !errors.Is(err, domain.ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUserUseCase_GetUser_StripsHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{
		ID:             "u1",
		HashedPassword: "secret-hash",
	}, nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	user, err := uc.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.HashedPassword != "" {
		t.Error("hashed password must be stripped")
	}
}
