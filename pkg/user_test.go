package pkg

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoles(t *testing.T) {

	assert.True(t, UserRole_Admin("admin"))
	assert.False(t, UserRole_Admin("operator"))
	assert.False(t, UserRole_Admin(nil))

	assert.True(t, UserRole_Operator("admin"))
	assert.True(t, UserRole_Operator("operator"))
	assert.False(t, UserRole_Operator("viewer"))

	assert.True(t, UserRole_Viewer("viewer"))
	assert.True(t, UserRole_Viewer("operator"))
	assert.False(t, UserRole_Viewer("janitor"))
}

func TestValidateStruct(t *testing.T) {

	ok := RegisterUserInput{
		Name:            "Pat Operator",
		Email:           "pat@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	}
	assert.Nil(t, ValidateStruct(ok))

	bad := RegisterUserInput{Email: "not-an-email", Password: "short"}
	errs := ValidateStruct(bad)
	require.NotEmpty(t, errs)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "required", fields["RegisterUserInput.Name"])
	assert.Equal(t, "email", fields["RegisterUserInput.Email"])
	assert.Equal(t, "min", fields["RegisterUserInput.Password"])
}

func TestJWTAccessTokenRoundTrip(t *testing.T) {

	Conf.JWTSecret = "test-secret"
	Conf.JWTExpiredIn = time.Minute

	us := UserSession{USR: UserResponse{ID: uuid.New(), Role: "operator"}}
	require.NoError(t, us.CreateJWTAccessToken())
	require.NotEmpty(t, us.ACCTok)

	claims, err := GetClaimsFromTokenString(us.ACCTok)
	require.NoError(t, err)
	assert.Equal(t, us.USR.ID.String(), claims["sub"])
	assert.Equal(t, "operator", claims["rol"])
}

func TestJWTAccessTokenExpired(t *testing.T) {

	Conf.JWTSecret = "test-secret"
	Conf.JWTExpiredIn = -time.Minute

	us := UserSession{USR: UserResponse{ID: uuid.New(), Role: "viewer"}}
	require.NoError(t, us.CreateJWTAccessToken())

	_, err := GetClaimsFromTokenString(us.ACCTok)
	assert.Error(t, err)
}

func TestJWTTokenWrongSecret(t *testing.T) {

	Conf.JWTSecret = "test-secret"
	Conf.JWTExpiredIn = time.Minute

	us := UserSession{USR: UserResponse{ID: uuid.New(), Role: "viewer"}}
	require.NoError(t, us.CreateJWTAccessToken())

	Conf.JWTSecret = "some-other-secret"
	_, err := GetClaimsFromTokenString(us.ACCTok)
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {

	conf, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", conf.DBHost)
	assert.Equal(t, "5432", conf.DBPort)
	assert.Equal(t, "ctms", conf.DBName)
	assert.Equal(t, "127.0.0.1:8007", conf.HTTPAddr)
	assert.Equal(t, time.Minute*60, conf.JWTExpiredIn)
}

func TestConnStr(t *testing.T) {

	conf := Config{
		DBHost: "db.local", DBPort: "5432",
		DBUser: "ctms", DBPassword: "pw", DBName: "ctms",
	}
	assert.Equal(t, "postgresql://ctms:pw@db.local:5432/ctms", conf.ConnStr())
	assert.Equal(t, "postgresql://ctms:pw@db.local:5432/postgres", conf.AdminConnStr())
}
