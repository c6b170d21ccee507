package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	ok, _ := ValidateEmail("user@example.com")
	assert.True(t, ok)

	for _, bad := range []string{"", "not-an-email", "a@b", "user@.com"} {
		ok, msg := ValidateEmail(bad)
		assert.False(t, ok, bad)
		assert.NotEmpty(t, msg)
	}
}

func TestValidatePassword(t *testing.T) {
	ok, _ := ValidatePassword("Str0ngPass")
	assert.True(t, ok)

	for _, bad := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		ok, _ := ValidatePassword(bad)
		assert.False(t, ok, bad)
	}
}

func TestValidateRole(t *testing.T) {
	ok, _ := ValidateRole("client")
	assert.True(t, ok)
	ok, _ = ValidateRole("freelancer")
	assert.True(t, ok)
	ok, _ = ValidateRole("admin")
	assert.False(t, ok)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-500))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00\n"))
}

func TestNewPaginationBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&limit=20", nil)
	p := NewPagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=-1&limit=9999", nil)
	p = NewPagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Limit)

	p.SetTotal(101)
	assert.Equal(t, 3, p.LastPage)
}
