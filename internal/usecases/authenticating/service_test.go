package authenticating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-pipeline-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-pipeline-api/internal/config"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "chave-de-teste"}
}

func TestService_CreateUser(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		setup   func(repo *mocks.MockUserRepository)
		wantErr error
	}{
		{
			name: "Usuário novo é criado com senha em hash",
			user: &domain.User{Name: "Maria", Email: "Maria@Example.com ", PasswordHash: "senha123"},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@example.com").Return(nil, nil)
				repo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
						// A senha nunca é gravada em texto plano
						assert.NotEqual(t, "senha123", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha123")))
						assert.True(t, user.Active)
						user.ID = 42
						return user, nil
					})
			},
		},
		{
			name:    "Campos obrigatórios ausentes retornam erro de validação",
			user:    &domain.User{Name: "Maria"},
			setup:   func(repo *mocks.MockUserRepository) {},
			wantErr: ErrMissingRequiredData,
		},
		{
			name: "Email já cadastrado retorna erro de duplicidade",
			user: &domain.User{Name: "Maria", Email: "maria@example.com", PasswordHash: "senha123"},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().
					GetUserByEmail(gomock.Any(), "maria@example.com").
					Return(&domain.User{ID: 1, Email: "maria@example.com"}, nil)
			},
			wantErr: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUserRepo := mocks.NewMockUserRepository(ctrl)
			tt.setup(mockUserRepo)

			service := NewService(mockUserRepo, testConfig())

			created, err := service.CreateUser(context.Background(), tt.user)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 42, created.ID)
			assert.Empty(t, created.PasswordHash)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	assert.NoError(t, err)

	activeUser := &domain.User{
		ID:           7,
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: string(hashed),
		Active:       true,
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "Credenciais válidas retornam token",
			email:    "maria@example.com",
			password: "senha123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@example.com").Return(activeUser, nil)
			},
		},
		{
			name:     "Usuário inexistente",
			email:    "ninguem@example.com",
			password: "senha123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@example.com").Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:     "Senha incorreta",
			email:    "maria@example.com",
			password: "senha-errada",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@example.com").Return(activeUser, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "Conta desativada",
			email:    "maria@example.com",
			password: "senha123",
			setup: func(repo *mocks.MockUserRepository) {
				disabled := *activeUser
				disabled.Active = false
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@example.com").Return(&disabled, nil)
			},
			wantErr: ErrUserDisabled,
		},
		{
			name:     "Campos vazios",
			email:    "",
			password: "",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUserRepo := mocks.NewMockUserRepository(ctrl)
			tt.setup(mockUserRepo)

			service := NewService(mockUserRepo, testConfig())

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, token)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			// O token emitido deve ser validável pelo próprio serviço
			claims, err := service.ValidateToken(token)
			assert.NoError(t, err)
			assert.Equal(t, activeUser.ID, claims.UserID)
			assert.Equal(t, activeUser.Email, claims.UserEmail)
		})
	}
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockUserRepository(ctrl), testConfig())

	_, err := service.ValidateToken("token-invalido")
	assert.Error(t, err)
}

func TestService_GetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockUserRepo.EXPECT().
		GetUserByID(gomock.Any(), 7).
		Return(&domain.User{ID: 7, Name: "Maria", PasswordHash: "hash"}, nil)

	service := NewService(mockUserRepo, testConfig())

	user, err := service.GetUserProfile(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
	assert.Empty(t, user.PasswordHash)
}
