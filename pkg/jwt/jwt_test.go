package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("segredo", "perfil-1", "vendedor", "", "portal-pedidos", 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	profileID, role, clientID, err := Parse("segredo", token)
	require.NoError(t, err)
	assert.Equal(t, "perfil-1", profileID)
	assert.Equal(t, "vendedor", role)
	assert.Empty(t, clientID)
}

func TestParse_ClientIDDoPapelCliente(t *testing.T) {
	token, err := Generate("segredo", "perfil-2", "cliente", "cliente-9", "portal-pedidos", 30)
	require.NoError(t, err)

	_, role, clientID, err := Parse("segredo", token)
	require.NoError(t, err)
	assert.Equal(t, "cliente", role)
	assert.Equal(t, "cliente-9", clientID)
}

func TestParse_SecretErrado(t *testing.T) {
	token, err := Generate("segredo", "perfil-1", "admin", "", "portal-pedidos", 30)
	require.NoError(t, err)

	_, _, _, err = Parse("outro-segredo", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("segredo", "perfil-1", "admin", "", "portal-pedidos", -1)
	require.NoError(t, err)

	_, _, _, err = Parse("segredo", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := Generate("", "perfil-1", "admin", "", "portal-pedidos", 30)
	assert.Error(t, err)
}
