package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pampazon/wms-api/internal/application/auth"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/domain"
	"github.com/pampazon/wms-api/internal/infrastructure/memory"
	"github.com/pampazon/wms-api/pkg/config"
	pkgjwt "github.com/pampazon/wms-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newUseCase() *auth.UseCase {
	return auth.NewUseCase(memory.NewUserRepository(memory.NewStore()), config.JWTConfig{
		Secret:     testSecret,
		Expiration: 60,
		Issuer:     "pampazon-wms-test",
	})
}

func registro(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: "contraseña-larga",
		Name:     "Operario Uno",
		Role:     "operario",
	}
}

func TestRegister_EmiteTokenConRol(t *testing.T) {
	uc := newUseCase()

	out, err := uc.Register(registro("uno@pampazon.com.ar"))
	require.NoError(t, err)

	assert.Equal(t, "uno@pampazon.com.ar", out.User.Email)
	assert.Equal(t, "operario", out.User.Role)
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "operario", role)
}

func TestRegister_NormalizaEmail(t *testing.T) {
	uc := newUseCase()

	out, err := uc.Register(registro("  Uno@Pampazon.com.AR "))
	require.NoError(t, err)
	assert.Equal(t, "uno@pampazon.com.ar", out.User.Email)

	// El duplicado se detecta sobre el email normalizado.
	_, err = uc.Register(registro("UNO@pampazon.com.ar"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_RolDesconocidoFalla(t *testing.T) {
	uc := newUseCase()
	in := registro("uno@pampazon.com.ar")
	in.Role = "superusuario"

	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_PasswordCortaFalla(t *testing.T) {
	uc := newUseCase()
	in := registro("uno@pampazon.com.ar")
	in.Password = "corta"

	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Register(registro("uno@pampazon.com.ar"))
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{
		Email:    "uno@pampazon.com.ar",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_PasswordIncorrectaFalla(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Register(registro("uno@pampazon.com.ar"))
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{
		Email:    "uno@pampazon.com.ar",
		Password: "otra-contraseña",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistenteFalla(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Login(dto.LoginRequest{
		Email:    "nadie@pampazon.com.ar",
		Password: "contraseña-larga",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
