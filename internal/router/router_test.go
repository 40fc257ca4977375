// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/utils"
)

type RouterTestSuite struct {
	suite.Suite
	mock   sqlmock.Sqlmock
	router *gin.Engine
	stop   func()
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize())
}

func (s *RouterTestSuite) SetupTest() {
	sqlDB, m, err := sqlmock.New()
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	s.mock = m
	s.router, s.stop = Initialize(db, testConfig(), Dependencies{Logger: quietLogger()})
}

func (s *RouterTestSuite) TearDownTest() {
	s.stop()
	s.NoError(s.mock.ExpectationsWereMet())
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:      config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1},
		Frontend: config.FrontendConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             100,
			AuthPerMinute:     5,
			AuthBurst:         5,
		},
	}
}

func (s *RouterTestSuite) token(userID string, role models.Role) string {
	token, err := utils.GenerateJWT(userID, "Test User", string(role), 1)
	s.Require().NoError(err)
	return token
}

func (s *RouterTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *RouterTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", s.decode(w)["database"])
}

func (s *RouterTestSuite) TestListProductsIsPublic() {
	rows := sqlmock.NewRows([]string{"id", "farmer_id", "name", "category", "price", "quantity"}).
		AddRow("7f1c0d4e-0000-4000-8000-000000000001", "f1", "Tomato", "Vegetables", "40.00", 5)
	s.mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)

	w := s.request(http.MethodGet, "/api/products", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body models.ProductListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Products, 1)
	s.Equal("Tomato", body.Products[0].Name)
	s.Equal(5, body.Products[0].Quantity)
}

func (s *RouterTestSuite) TestProtectedRouteRequiresToken() {
	w := s.request(http.MethodGet, "/api/products/my-products", "", nil)

	s.Equal(http.StatusUnauthorized, w.Code)
	body := s.decode(w)
	s.Equal(false, body["success"])
	s.NotEmpty(body["message"])
}

func (s *RouterTestSuite) TestFarmerCannotPlaceOrder() {
	w := s.request(http.MethodPost, "/api/orders", s.token("f1", models.RoleFarmer), map[string]interface{}{
		"items":        []map[string]interface{}{{"product": "p1", "quantity": 1}},
		"deliveryType": "Delivery",
	})

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestCustomerCannotSeeFarmerOrders() {
	w := s.request(http.MethodGet, "/api/orders/farmer-orders", s.token("c1", models.RoleCustomer), nil)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterTestSuite) TestMalformedProductID() {
	w := s.request(http.MethodPut, "/api/products/not-a-uuid", s.token("f1", models.RoleFarmer), map[string]interface{}{
		"name":     "Tomato",
		"category": "Vegetables",
		"price":    40,
		"quantity": 5,
	})

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestCreateProductValidation() {
	w := s.request(http.MethodPost, "/api/products", s.token("f1", models.RoleFarmer), map[string]interface{}{
		"name":     "",
		"category": "Meat",
		"price":    10,
		"quantity": 1,
	})

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decode(w)
	s.Equal(false, body["success"])
	s.NotEmpty(body["message"])
}

func (s *RouterTestSuite) TestLogoutRevokesToken() {
	token := s.token("c1", models.RoleCustomer)

	w := s.request(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestDeliveredOrderCannotBeAccepted() {
	rows := sqlmock.NewRows([]string{"id", "customer_id", "farmer_id", "delivery_type", "status"}).
		AddRow("9a2b7c1d-0000-4000-8000-000000000001", "c1", "f1", "Delivery", "Delivered")
	s.mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(rows)

	w := s.request(http.MethodPut, "/api/orders/9a2b7c1d-0000-4000-8000-000000000001",
		s.token("f1", models.RoleFarmer), map[string]interface{}{"status": "Accepted"})

	s.Equal(http.StatusConflict, w.Code)
	body := s.decode(w)
	s.Equal(false, body["success"])
	s.Equal("CONFLICT", body["error"].(map[string]interface{})["code"])
}

func (s *RouterTestSuite) TestUnknownRoute() {
	w := s.request(http.MethodGet, "/api/nowhere", "", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.decode(w)["error"].(map[string]interface{})["code"])
}

func TestInitializeStopReleasesRateLimiters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	before := runtime.NumGoroutine()

	for i := 0; i < 50; i++ {
		_, stop := Initialize(nil, testConfig(), Dependencies{Logger: quietLogger()})
		stop()
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, time.Second, 10*time.Millisecond)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
