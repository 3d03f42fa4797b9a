package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kivo-shop/kivo-api/internal/application/auth"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "kivo-api-test"}
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string, isAdmin bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Usuario Prueba",
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(user))
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	repo := newMemUserRepo()
	user := seedUser(t, repo, "admin@kivo.com", "secreto123", true)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	out, err := uc.Login(dto.LoginRequest{Email: "admin@kivo.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.Email, out.User.Email)
	assert.True(t, out.User.IsAdmin)

	// El token decodifica al usuario correcto con su flag de admin.
	userID, isAdmin, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.True(t, isAdmin)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "admin@kivo.com", "secreto123", true)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "admin@kivo.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente_MismoError(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "admin@kivo.com", "secreto123", true)
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	_, errEmail := uc.Login(dto.LoginRequest{Email: "otro@kivo.com", Password: "secreto123"})
	_, errPass := uc.Login(dto.LoginRequest{Email: "admin@kivo.com", Password: "incorrecto"})

	// Mismo error en ambos casos: no se puede enumerar cuentas.
	assert.ErrorIs(t, errEmail, domain.ErrUnauthorized)
	assert.Equal(t, errEmail, errPass)
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureDefaultAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureDefaultAdmin_SiembraUnaVez(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	require.NoError(t, uc.EnsureDefaultAdmin("admin@kivo.com", "password", "Administrador"))

	admin, err := repo.GetByEmail("admin@kivo.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password")),
		"el password se guarda como hash bcrypt")

	// Idempotente: una segunda siembra no falla ni duplica.
	require.NoError(t, uc.EnsureDefaultAdmin("admin@kivo.com", "password", "Administrador"))

	again, err := repo.GetByEmail("admin@kivo.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID, "el usuario sembrado no se reemplaza")
}

func TestEnsureDefaultAdmin_LoginFunciona(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	require.NoError(t, uc.EnsureDefaultAdmin("admin@kivo.com", "password", "Administrador"))

	out, err := uc.Login(dto.LoginRequest{Email: "admin@kivo.com", Password: "password"})
	require.NoError(t, err)
	assert.True(t, out.User.IsAdmin)
}
