package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/PharmGest-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "vendedor", "vendedor", "pharmgest", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "vendedor", claims.Username)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "pharmgest", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "admin", "admin", "pharmgest", 5)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "admin", "admin", "pharmgest", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "admin", "admin", "pharmgest", 5)
	assert.Error(t, err)
}

func TestParse_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
