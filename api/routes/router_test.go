package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fondita/fondita-backend/internal/accounts"
	"github.com/fondita/fondita-backend/internal/audit"
	authsvc "github.com/fondita/fondita-backend/internal/auth"
	catalogsvc "github.com/fondita/fondita-backend/internal/catalog"
	ordersvc "github.com/fondita/fondita-backend/internal/orders"
	pkgauth "github.com/fondita/fondita-backend/pkg/auth"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	pkgerrors "github.com/fondita/fondita-backend/pkg/errors"
	"github.com/fondita/fondita-backend/pkg/logger"
	"github.com/fondita/fondita-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubRateStore struct{}

func (stubRateStore) IncrWithTTL(context.Context, string, time.Duration) (int64, error) {
	return 1, nil
}

type stubAdminFinder struct {
	admins map[uuid.UUID]*models.Admin
}

func (s stubAdminFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	if admin, ok := s.admins[id]; ok {
		return admin, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeUserNotFound, "Usuario no encontrado")
}

type stubCustomerFinder struct {
	customers map[uuid.UUID]*models.Customer
}

func (s stubCustomerFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	if customer, ok := s.customers[id]; ok {
		return customer, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeUserNotFound, "Usuario no encontrado")
}

type stubAuditRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *stubAuditRecorder) Record(entry audit.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *stubAuditRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubAuthService struct{}

func (stubAuthService) Login(_ context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   "token",
		User:    accounts.SafeCustomer{ID: uuid.New(), Email: req.Email, Role: enums.CustomerRole},
	}, nil
}

func (stubAuthService) AdminLogin(_ context.Context, req authsvc.LoginRequest) (*authsvc.AdminLoginResponse, error) {
	return &authsvc.AdminLoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   "token",
		Admin:   accounts.SafeAdmin{ID: uuid.New(), Email: req.Email, Role: enums.AdminRoleAdmin.String()},
	}, nil
}

func (stubAuthService) Register(_ context.Context, req authsvc.RegisterRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{
		Message: "Usuario registrado exitosamente",
		Token:   "token",
		User:    accounts.SafeCustomer{ID: uuid.New(), Name: req.Name, Email: req.Email},
	}, nil
}

func (stubAuthService) CreateAdmin(_ context.Context, _ enums.AdminRole, req authsvc.CreateAdminRequest) (*authsvc.CreateAdminResponse, error) {
	return &authsvc.CreateAdminResponse{
		Message: "Administrador creado exitosamente",
		Admin:   accounts.SafeAdmin{ID: uuid.New(), Email: req.Email, Role: enums.AdminRoleAdmin.String()},
	}, nil
}

func (stubAuthService) VerifyToken(_ context.Context, raw string) (*authsvc.VerifyResponse, error) {
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "Token inválido")
	}
	return &authsvc.VerifyResponse{Valid: true, Type: enums.TokenKindCustomer.String()}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) List(context.Context) ([]catalogsvc.ProductDTO, error) {
	return []catalogsvc.ProductDTO{}, nil
}

func (stubCatalogService) Get(_ context.Context, id uuid.UUID) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: id, Name: "Pozole", Price: decimal.RequireFromString("80.00"), Available: true}, nil
}

func (stubCatalogService) Create(_ context.Context, req catalogsvc.ProductRequest) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: uuid.New(), Name: req.Name, Price: *req.Price, Available: true}, nil
}

func (stubCatalogService) Update(_ context.Context, id uuid.UUID, req catalogsvc.ProductRequest) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: id, Name: req.Name, Price: *req.Price, Available: true}, nil
}

func (stubCatalogService) SetAvailability(_ context.Context, id uuid.UUID, available bool) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: id, Name: "Pozole", Available: available}, nil
}

func (stubCatalogService) Delete(_ context.Context, _ uuid.UUID) (*catalogsvc.DeleteResponse, error) {
	return &catalogsvc.DeleteResponse{Message: "Producto eliminado exitosamente", Name: "Pozole"}, nil
}

type stubOrderService struct {
	mu           sync.Mutex
	lastCustomer *uuid.UUID
}

func (s *stubOrderService) Create(_ context.Context, _ ordersvc.CreateOrderRequest, customerID *uuid.UUID) (*ordersvc.CreateOrderResponse, error) {
	s.mu.Lock()
	s.lastCustomer = customerID
	s.mu.Unlock()
	return &ordersvc.CreateOrderResponse{
		Message: "Pedido creado exitosamente",
		Order:   ordersvc.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPending, UserID: customerID},
	}, nil
}

func (s *stubOrderService) List(context.Context) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, id uuid.UUID, rawStatus string) (*ordersvc.OrderDTO, error) {
	status, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Estado de pedido inválido")
	}
	return &ordersvc.OrderDTO{ID: id, Status: status}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:      "shared-secret",
			Issuer:      "fondita",
			CustomerTTL: time.Hour,
			AdminTTL:    time.Hour,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:        time.Minute,
			LoginEmailLimit:    5,
			LoginIPLimit:       20,
			RegisterWindow:     5 * time.Minute,
			RegisterEmailLimit: 3,
			RegisterIPLimit:    20,
		},
		Idempotency: config.IdempotencyConfig{OrderTTL: 24 * time.Hour},
	}
}

type routerFixture struct {
	router  http.Handler
	cfg     *config.Config
	admin   *models.Admin
	orders  *stubOrderService
	audited *stubAuditRecorder
}

func newTestRouter(t *testing.T) *routerFixture {
	t.Helper()

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	admin := &models.Admin{ID: uuid.New(), Email: "admin@fondita.mx", Role: enums.AdminRoleAdmin, Active: true}
	orders := &stubOrderService{}
	recorder := &stubAuditRecorder{}

	router := NewRouter(Params{
		Config:         cfg,
		Logger:         logg,
		Metrics:        metrics.NewHTTPMetrics("test-routing"),
		DB:             stubPinger{},
		Cache:          stubPinger{},
		RateLimitStore: stubRateStore{},
		Customers:      stubCustomerFinder{customers: map[uuid.UUID]*models.Customer{}},
		Admins:         stubAdminFinder{admins: map[uuid.UUID]*models.Admin{admin.ID: admin}},
		AuthService:    stubAuthService{},
		CatalogService: stubCatalogService{},
		OrderService:   orders,
		Audit:          recorder,
	})

	return &routerFixture{router: router, cfg: cfg, admin: admin, orders: orders, audited: recorder}
}

func (f *routerFixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := pkgauth.Mint(f.cfg.JWT, time.Now(), pkgauth.TokenPayload{
		SubjectID: f.admin.ID,
		Email:     f.admin.Email,
		Role:      f.admin.Role.String(),
		Kind:      enums.TokenKindAdmin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestHealthEndpoints(t *testing.T) {
	f := newTestRouter(t)

	if resp := f.do(httptest.NewRequest(http.MethodGet, "/health", nil)); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if resp := f.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil)); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
	if resp := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil)); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	f := newTestRouter(t)

	if resp := f.do(httptest.NewRequest(http.MethodGet, "/api/productos", nil)); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for product list got %d", resp.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/productos/"+uuid.NewString(), nil)
	if resp := f.do(req); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for product detail got %d", resp.Code)
	}
}

func TestCatalogWritesRequireAdminToken(t *testing.T) {
	f := newTestRouter(t)
	body := `{"nombre":"Tacos al Pastor","precio":"45.50"}`

	resp := f.do(httptest.NewRequest(http.MethodPost, "/api/productos", strings.NewReader(body)))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
	if code := errorCode(t, resp.Body.Bytes()); code != string(pkgerrors.CodeNoToken) {
		t.Fatalf("expected NO_TOKEN got %s", code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/productos", strings.NewReader(body))
	authed.Header.Set("Authorization", "Bearer "+f.adminToken(t))
	resp = f.do(authed)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin create got %d: %s", resp.Code, resp.Body.String())
	}

	actions := f.audited.actions()
	if len(actions) != 1 || actions[0] != "crear_producto" {
		t.Fatalf("expected crear_producto audit entry, got %v", actions)
	}
}

func TestGuestCheckoutRoute(t *testing.T) {
	f := newTestRouter(t)

	body := `{
		"cliente_nombre": "Mariana López",
		"cliente_telefono": "55 1234 5678",
		"cliente_direccion": "Av. Insurgentes Sur 1234",
		"productos": [{"nombre": "Tacos al Pastor", "cantidad": 2, "precio": "12.99"}],
		"total": "25.98"
	}`
	resp := f.do(httptest.NewRequest(http.MethodPost, "/api/pedidos", strings.NewReader(body)))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for guest checkout got %d: %s", resp.Code, resp.Body.String())
	}
	if f.orders.lastCustomer != nil {
		t.Fatal("guest checkout must reach the service without a customer id")
	}
}

func TestOrderReviewRequiresAdminToken(t *testing.T) {
	f := newTestRouter(t)

	resp := f.do(httptest.NewRequest(http.MethodGet, "/api/pedidos", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	authed.Header.Set("Authorization", "Bearer "+f.adminToken(t))
	if resp := f.do(authed); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin order list got %d", resp.Code)
	}
}

func TestCustomerTokenRejectedOnAdminRoutes(t *testing.T) {
	f := newTestRouter(t)

	token, err := pkgauth.Mint(f.cfg.JWT, time.Now(), pkgauth.TokenPayload{
		SubjectID: uuid.New(),
		Email:     "cliente@fondita.mx",
		Role:      enums.CustomerRole,
		Kind:      enums.TokenKindCustomer,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := f.do(req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for customer token on admin route got %d", resp.Code)
	}
	if code := errorCode(t, resp.Body.Bytes()); code != string(pkgerrors.CodeInvalidToken) {
		t.Fatalf("expected INVALID_TOKEN got %s", code)
	}
}

func TestOrderStatusRouteDispatch(t *testing.T) {
	f := newTestRouter(t)

	req := httptest.NewRequest(
		http.MethodPut,
		"/api/pedidos/"+uuid.NewString()+"/estado",
		strings.NewReader(`{"estado":"preparando"}`),
	)
	req.Header.Set("Authorization", "Bearer "+f.adminToken(t))
	resp := f.do(req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for status update got %d: %s", resp.Code, resp.Body.String())
	}

	actions := f.audited.actions()
	if len(actions) != 1 || actions[0] != "cambiar_estado_pedido" {
		t.Fatalf("expected cambiar_estado_pedido audit entry, got %v", actions)
	}
}

func TestLoginRouteDispatch(t *testing.T) {
	f := newTestRouter(t)

	body := `{"email":"cliente@fondita.mx","password":"secreto"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := f.do(req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "Inicio de sesión exitoso") {
		t.Fatalf("expected login mensaje in body, got %s", resp.Body.String())
	}
}
