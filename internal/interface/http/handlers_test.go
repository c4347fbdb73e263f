package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/internal/infrastructure/memory"
	"github.com/oksasatya/go-restaurant-orders/internal/interface/middleware"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
	"github.com/oksasatya/go-restaurant-orders/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	menu   *memory.MenuRepository
}

// asUser stands in for JWTAuth so handlers can be exercised without tokens.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != "" {
			c.Request = c.Request.WithContext(middleware.WithIdentity(c.Request.Context(), uid))
		}
		c.Next()
	}
}

func newTestServer(t *testing.T, uid string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := helpers.NewNopLogger()
	menu := memory.NewMenuRepository()
	users := memory.NewUserRepository()
	orders := memory.NewOrderRepository(menu)

	auth := NewAuthHandler(application.NewAuthService(users, helpers.NewJWTManager("secret", time.Hour), logger), logger)
	order := NewOrderHandler(application.NewOrderService(menu, orders, nil, logger), logger)
	menuH := NewMenuHandler(application.NewMenuService(menu, nil, nil, logger), logger)

	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.POST("/order", asUser(uid), order.PlaceOrder)
	r.GET("/orders", asUser(uid), order.ListOrders)
	r.GET("/menu", menuH.List)
	r.POST("/menu", menuH.Create)
	r.GET("/menu/search", menuH.Search)
	r.GET("/menu/:id", menuH.Get)
	r.PUT("/menu/:id", menuH.Update)
	r.DELETE("/menu/:id", menuH.Delete)
	r.POST("/menu/:id/image", menuH.UploadImage)
	return &testServer{engine: r, menu: menu}
}

func (s *testServer) raw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// do decodes the standard envelope; use raw for the bare order and login bodies.
func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := s.raw(t, method, path, body)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) createItem(t *testing.T, body string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/menu", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))
	return item.ID
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t, "")

	w, env := s.do(t, http.MethodPost, "/register", `{"username":"alice","password":"pw1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	w, _ = s.do(t, http.MethodPost, "/register", `{"username":"alice","password":"pw2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(t, http.MethodPost, "/register", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "password")

	w = s.raw(t, http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res, 3)
	assert.Equal(t, 200.0, res["status"])
	assert.NotEmpty(t, res["token"])
	assert.Equal(t, "alice", res["name"])

	w, _ = s.do(t, http.MethodPost, "/login", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/login", `{"username":"carol","password":"pw1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPost, "/login", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_PlaceAndList(t *testing.T) {
	s := newTestServer(t, "user-1")
	id := s.createItem(t, `{"name":"X","price":5.0}`)

	w := s.raw(t, http.MethodPost, "/order", `{"items":[{"menuItem":"`+id+`","quantity":2}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var placed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, 10.0, placed["totalAmount"])
	assert.Equal(t, "Pending", placed["status"])
	assert.Equal(t, "user-1", placed["userId"])
	assert.NotEmpty(t, placed["id"])
	items := placed["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, id, line["menuItem"])
	assert.Equal(t, 2.0, line["quantity"])
	assert.Equal(t, 5.0, line["unitPrice"])

	w = s.raw(t, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, placed["id"], listed[0]["id"])
	expanded := listed[0]["items"].([]any)[0].(map[string]any)["menuItem"].(map[string]any)
	assert.Equal(t, id, expanded["id"])
	assert.Equal(t, "X", expanded["name"])
}

func TestOrderHandler_SubCentPriceKeepsTotalConsistent(t *testing.T) {
	s := newTestServer(t, "user-1")
	id := s.createItem(t, `{"name":"Mint","price":0.125}`)

	w := s.raw(t, http.MethodPost, "/order", `{"items":[{"menuItem":"`+id+`","quantity":1}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var placed struct {
		TotalAmount float64 `json:"totalAmount"`
		Items       []struct {
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unitPrice"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 0.13, placed.Items[0].UnitPrice)
	assert.Equal(t, placed.Items[0].UnitPrice*float64(placed.Items[0].Quantity), placed.TotalAmount)
}

func TestOrderHandler_DeletedItemListsAsNull(t *testing.T) {
	s := newTestServer(t, "user-1")
	id := s.createItem(t, `{"name":"X","price":5.0}`)

	w := s.raw(t, http.MethodPost, "/order", `{"items":[{"menuItem":"`+id+`","quantity":1}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, "/menu/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.raw(t, http.MethodGet, "/orders", "")
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	line := listed[0]["items"].([]any)[0].(map[string]any)
	v, ok := line["menuItem"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 5.0, listed[0]["totalAmount"])
}

func TestOrderHandler_NotFound(t *testing.T) {
	s := newTestServer(t, "user-1")

	w, env := s.do(t, http.MethodPost, "/order", `{"items":[{"menuItem":"nonexistent","quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, string(env.Error), "nonexistent")

	w = s.raw(t, http.MethodGet, "/orders", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOrderHandler_InvalidInput(t *testing.T) {
	s := newTestServer(t, "user-1")
	id := s.createItem(t, `{"name":"X","price":5.0}`)

	bodies := []string{
		``,
		`{}`,
		`{"items":[]}`,
		`{"items":"x"}`,
		`{"items":[{"quantity":1}]}`,
		`{"items":[{"menuItem":"` + id + `","quantity":0}]}`,
		`{"items":[{"menuItem":"` + id + `","quantity":-3}]}`,
		`{"items":[{"menuItem":"` + id + `","quantity":2.5}]}`,
		`{"items":[{"menuItem":"` + id + `"}]}`,
		`{"items":[{"menuItem":"` + id + `","quantity":3000000000}]}`,
		`{"items":[{"menuItem":"` + id + `","quantity":10001}]}`,
	}
	for _, body := range bodies {
		w, env := s.do(t, http.MethodPost, "/order", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.False(t, env.Success)
	}

	w := s.raw(t, http.MethodGet, "/orders", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOrderHandler_RequiresIdentity(t *testing.T) {
	s := newTestServer(t, "")
	w, _ := s.do(t, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMenuHandler_CRUD(t *testing.T) {
	s := newTestServer(t, "")

	w, _ := s.do(t, http.MethodPost, "/menu", `{"name":"Soup"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, "/menu", `{"price":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, "/menu", `{"name":"Soup","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := s.createItem(t, `{"name":"Soup","category":"Starters","price":4.5}`)
	m, err := s.menu.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, m.Availability)

	w, env := s.do(t, http.MethodPut, "/menu/"+id, `{"price":5,"availability":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 5.0, updated["price"])
	assert.Equal(t, false, updated["availability"])
	assert.Equal(t, "Soup", updated["name"])

	w, _ = s.do(t, http.MethodPut, "/menu/missing", `{"price":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodGet, "/menu/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, 5.0, fetched["price"])

	w, _ = s.do(t, http.MethodGet, "/menu/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, env.Meta["count"])

	w, _ = s.do(t, http.MethodDelete, "/menu/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, "/menu/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuHandler_SearchWithoutIndex(t *testing.T) {
	s := newTestServer(t, "")
	w, env := s.do(t, http.MethodGet, "/menu/search?q=soup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestMenuHandler_UploadImage(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createItem(t, `{"name":"Soup","price":4.5}`)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="soup.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/menu/"+id+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	// no image store configured
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = s.do(t, http.MethodPost, "/menu/"+id+"/image", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
