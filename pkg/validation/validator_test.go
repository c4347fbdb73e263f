package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	MenuItem string `json:"menuItem" binding:"required"`
	Quantity int    `json:"quantity" binding:"qty"`
}

type orderPayload struct {
	Items []line `json:"items" binding:"required,min=1,dive"`
}

type account struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

func bind(t *testing.T, body string, dest any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dest)
}

func TestToDetails_ValidationErrors(t *testing.T) {
	var p orderPayload
	err := bind(t, `{"items":[{"menuItem":"a","quantity":0}]}`, &p)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"items[0].quantity": "must be between 1 and 10000"}, ToDetails(err))

	err = bind(t, `{"items":[{"menuItem":"a","quantity":3000000000}]}`, &p)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"items[0].quantity": "must be between 1 and 10000"}, ToDetails(err))

	require.NoError(t, bind(t, `{"items":[{"menuItem":"a","quantity":10000}]}`, &p))

	err = bind(t, `{"items":[]}`, &p)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"items": "must contain at least 1 item(s)"}, ToDetails(err))

	var a account
	err = bind(t, `{"username":"alice"}`, &a)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"password": "is required"}, ToDetails(err))

	err = bind(t, `{"username":"alice","password":"`+strings.Repeat("x", 73)+`"}`, &a)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"password": "must be between 1 and 72 characters"}, ToDetails(err))
}

func TestToDetails_DecodeErrors(t *testing.T) {
	var p orderPayload
	err := bind(t, `{"items":`, &p)
	require.Error(t, err)
	assert.NotEmpty(t, ToDetails(err))

	err = bind(t, `{"items":[{"menuItem":"a","quantity":2.5}]}`, &p)
	require.Error(t, err)
	details := ToDetails(err)
	require.Len(t, details, 1)
	for _, msg := range details {
		assert.Equal(t, "must be an integer", msg)
	}

	assert.Nil(t, ToDetails(nil))
}
