// internal/client/client_test.go
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/farmfresh/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	session, err := NewSession(nil)
	require.NoError(t, err)

	return New(srv.URL, session, WithLogger(quietLogger())), &calls
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListProductsIsPublic(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"products":[{"_id":"p1","name":"Tomato","category":"Vegetables","price":40,"quantity":5}]}`)
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, models.CategoryVegetables, products[0].Category)
	assert.Equal(t, "40", products[0].Price.String())
}

func TestListProductsEmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProtectedCallWithoutTokenSkipsNetwork(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Order{})
	})

	_, err := c.ListMyOrders(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = c.PlaceOrder(context.Background(), models.PlaceOrderRequest{})
	assert.ErrorIs(t, err, ErrAuthRequired)

	err = c.DeleteProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrAuthRequired)

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestBearerTokenAttached(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/orders/farmer-orders", r.URL.Path)
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"_id": "o1", "status": "Pending", "items": []interface{}{}},
		})
	})
	require.NoError(t, c.Session().Set("tok-123", models.User{Name: "Ravi"}))

	orders, err := c.ListFarmerOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Token has expired",
			"error":   map[string]string{"code": "UNAUTHORIZED", "message": "Token has expired"},
		})
	})
	require.NoError(t, c.Session().Set("stale", models.User{}))

	_, err := c.ListMyProducts(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, "Token has expired", ServerMessage(err))
	assert.False(t, c.Session().Authenticated())
}

func TestServerErrorKeepsSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]string{"code": "INSUFFICIENT_STOCK", "message": "Only 5 units available"},
		})
	})
	require.NoError(t, c.Session().Set("tok", models.User{}))

	_, err := c.PlaceOrder(context.Background(), models.PlaceOrderRequest{
		Items:        []models.OrderItemRequest{{Product: "p1", Quantity: 7}},
		DeliveryType: models.DeliveryTypeDelivery,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, IsAuthError(err))
	assert.Equal(t, "Only 5 units available", ServerMessage(err))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.True(t, c.Session().Authenticated())
}

func TestStringErrorField(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	_, err := c.ListProducts(context.Background())
	assert.Equal(t, "boom", ServerMessage(err))
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil, WithLogger(quietLogger()))
	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Zero(t, StatusCode(err))
}

func TestLoginStoresSessionAndLogoutClears(t *testing.T) {
	var loggedOut int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "asha@example.com", req.Email)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"token": "jwt-token",
				"user":  map[string]interface{}{"_id": "u1", "name": "Asha", "role": "farmer"},
			})
		case "/api/auth/logout":
			assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
			atomic.AddInt32(&loggedOut, 1)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
		default:
			http.NotFound(w, r)
		}
	})

	user, err := c.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFarmer, user.Role)
	assert.Equal(t, "jwt-token", c.Session().Token())
	assert.Equal(t, "u1", c.Session().User().ID)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().Authenticated())
	assert.Equal(t, int32(1), atomic.LoadInt32(&loggedOut))
}

func TestUpdateOrderStatusSendsStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/o1", r.URL.Path)
		var req models.UpdateOrderStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.OrderStatusAccepted, req.Status)
		writeJSON(w, http.StatusOK, map[string]interface{}{"_id": "o1", "status": "Accepted"})
	})
	require.NoError(t, c.Session().Set("tok", models.User{}))

	order, err := c.UpdateOrderStatus(context.Background(), "o1", models.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)
}

func TestFileSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store := NewFileSessionStore(path)

	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	session, err := NewSession(store)
	require.NoError(t, err)
	require.NoError(t, session.Set("tok", models.User{
		BaseModel: models.BaseModel{ID: "u1"},
		Name:      "Asha",
		Role:      models.RoleCustomer,
	}))

	restored, err := NewSession(NewFileSessionStore(path))
	require.NoError(t, err)
	assert.Equal(t, "tok", restored.Token())
	assert.Equal(t, "Asha", restored.User().Name)
	assert.Equal(t, models.RoleCustomer, restored.User().Role)

	require.NoError(t, restored.Clear())
	data, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
	require.NoError(t, store.Clear())
}

func TestLanguageHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Accept-Language")
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": []interface{}{}})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, WithLogger(quietLogger()), WithLanguage("hi"))
	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := New("http://localhost:5000", nil, WithHTTPClient(shared), WithTimeout(5*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

func TestNilHTTPClientKeepsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": []interface{}{}})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, WithLogger(quietLogger()), WithHTTPClient(nil), WithTimeout(time.Second))
	require.NotNil(t, c.httpClient)
	assert.Equal(t, time.Second, c.httpClient.Timeout)

	assert.NotPanics(t, func() {
		_, err := c.ListProducts(context.Background())
		assert.NoError(t, err)
	})
}
