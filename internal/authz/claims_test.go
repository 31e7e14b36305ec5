package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestFromMap_AdminMustBeBooleanTrue(t *testing.T) {
	cases := []struct {
		name  string
		in    map[string]interface{}
		admin bool
	}{
		{"bool true", map[string]interface{}{"admin": true}, true},
		{"bool false", map[string]interface{}{"admin": false}, false},
		{"string true", map[string]interface{}{"admin": "true"}, false},
		{"number one", map[string]interface{}{"admin": float64(1)}, false},
		{"absent", map[string]interface{}{"sub": "u1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.admin, FromMap(tc.in).IsAdmin())
		})
	}
}

func TestFromMap_Nil(t *testing.T) {
	var c *Claims = FromMap(nil)
	require.Nil(t, c)
	require.False(t, c.IsAdmin())
}

func TestFromMap_StandardFields(t *testing.T) {
	c := FromMap(map[string]interface{}{"sub": "u1", "email": "a@x.com", "name": "Ana"})
	require.Equal(t, "u1", c.Subject)
	require.Equal(t, "a@x.com", c.Email)
	require.Equal(t, "Ana", c.Name)
}

func TestContextRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Nil(t, FromContext(c))

	SetClaims(c, &Claims{Subject: "u1", Admin: true})
	got := FromContext(c)
	require.NotNil(t, got)
	require.True(t, got.IsAdmin())
}
