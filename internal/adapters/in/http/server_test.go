package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type topicEcho struct{}

func (topicEcho) Snapshot(_ context.Context, topic realtime.Topic) ([]byte, error) {
	return []byte(`{"topic":"` + string(topic) + `"}`), nil
}

type fixture struct {
	t       *testing.T
	e       *echo.Echo
	auth    *httpadapter.Authenticator
	hub     *realtime.Hub
	metrics *metrics.Metrics

	create  *MockCreateOrderHandler
	update  *MockUpdateShopOrderHandler
	assign  *MockAssignDelivererHandler
	correct *MockCorrectOrderHandler
	remove  *MockDeleteOrderHandler
	get     *MockGetOrderHandler
	list    *MockListOrdersHandler
	views   *MockShopOrderViewHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	contract, err := httpadapter.LoadContract()
	require.NoError(t, err)

	f := &fixture{
		t:       t,
		auth:    httpadapter.NewAuthenticator(testSecret),
		hub:     realtime.NewHub(topicEcho{}, realtime.Config{}, nil, logger),
		metrics: metrics.New(),
		create:  &MockCreateOrderHandler{},
		update:  &MockUpdateShopOrderHandler{},
		assign:  &MockAssignDelivererHandler{},
		correct: &MockCorrectOrderHandler{},
		remove:  &MockDeleteOrderHandler{},
		get:     &MockGetOrderHandler{},
		list:    &MockListOrdersHandler{},
		views:   &MockShopOrderViewHandler{},
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:     f.create,
		UpdateShopOrder: f.update,
		AssignDeliverer: f.assign,
		CorrectOrder:    f.correct,
		DeleteOrder:     f.remove,
		GetOrder:        f.get,
		ListOrders:      f.list,
		ShopViews:       f.views,
	}, f.hub, f.auth, contract, logger, httpadapter.WithMetrics(f.metrics.Handler(), f.metrics))
	f.e = server.NewEcho()
	return f
}

func (f *fixture) token(role identity.Role) (string, identity.Principal) {
	f.t.Helper()
	p := identity.Principal{UserID: kernel.NewUUID(), Role: role, Email: string(role) + "@example.com"}
	raw, err := f.auth.Issue(p, time.Hour)
	require.NoError(f.t, err)
	return raw, p
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ErrorResponse {
	t.Helper()
	var body httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newTestOrder(t *testing.T, buyerID kernel.UUID) *order.Order {
	t.Helper()
	currency, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	price, err := kernel.MoneyFromString("9.90")
	require.NoError(t, err)

	so, err := order.NewShopOrder(kernel.NewUUID(), "bakery", "Bakery", "", catalog.ShopTypeStore)
	require.NoError(t, err)
	p, err := order.NewProductOrder(order.ProductOrderParams{
		ProductID: kernel.NewUUID(),
		Name:      "Sourdough",
		Price:     price,
		Currency:  currency,
	})
	require.NoError(t, err)
	require.NoError(t, so.AddProduct(p))

	number, err := order.NewNumber()
	require.NoError(t, err)
	o, err := order.NewOrder(number, buyerID, currency, []*order.ShopOrder{so}, nil, time.Now())
	require.NoError(t, err)
	return o
}

func Test_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func Test_Authentication(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/orders", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, http.StatusUnauthorized, decodeError(t, rec).Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		f := newFixture(t)
		other := httpadapter.NewAuthenticator("other-secret")
		raw, err := other.Issue(identity.Principal{UserID: kernel.NewUUID(), Role: identity.RoleAdmin}, time.Hour)
		require.NoError(t, err)

		rec := f.do(http.MethodGet, "/api/orders", raw, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		raw, err := f.auth.Issue(identity.Principal{UserID: kernel.NewUUID(), Role: identity.RoleAdmin}, -time.Minute)
		require.NoError(t, err)

		rec := f.do(http.MethodGet, "/api/orders", raw, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)

		rec := f.do(http.MethodGet, "/api/orders", raw, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("token as query parameter", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleAdmin)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderResponse{}, nil)

		rec := f.do(http.MethodGet, "/api/orders?token="+raw, "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func Test_CreateOrder(t *testing.T) {
	body := func(price string) string {
		return `{"currency":"EUR","products":[{"id":"` + kernel.NewUUID().String() +
			`","shopId":"` + kernel.NewUUID().String() + `","price":"` + price + `"}],"shops":["` +
			kernel.NewUUID().String() + `"],"addresses":[]}`
	}

	t.Run("creates the order for the caller", func(t *testing.T) {
		// Given
		f := newFixture(t)
		raw, buyer := f.token(identity.RoleBuyer)
		created := newTestOrder(t, buyer.UserID)
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.BuyerID().IsEqual(buyer.UserID) && cmd.Currency().String() == "EUR"
		})).Return(created, nil)

		// When
		rec := f.do(http.MethodPost, "/api/orders", raw, body("9.90"))

		// Then
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var got queries.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, created.Number().String(), got.Number)
		assert.Equal(t, "9.9", got.Total)
		require.Len(t, got.Shops, 1)
		assert.Equal(t, "waiting", got.Shops[0].Status)
		f.create.AssertExpectations(t)
	})

	t.Run("lines reference products by id", func(t *testing.T) {
		// Given three lines over two shops
		f := newFixture(t)
		raw, buyer := f.token(identity.RoleBuyer)
		p1, p2, p3 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		s1, s2, a1 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		payload := fmt.Sprintf(`{"currency":"USD","products":[`+
			`{"id":"%s","shopId":"%s","price":"10"},`+
			`{"id":"%s","shopId":"%s","price":"5"},`+
			`{"id":"%s","shopId":"%s","price":"20"}],`+
			`"shops":["%s","%s"],"addresses":["%s"]}`,
			p1, s1, p2, s1, p3, s2, s1, s2, a1)
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			lines := cmd.Lines()
			return len(lines) == 3 &&
				lines[0].ProductID.IsEqual(p1) && lines[0].ShopID.IsEqual(s1) &&
				lines[1].ProductID.IsEqual(p2) &&
				lines[2].ProductID.IsEqual(p3) && lines[2].ShopID.IsEqual(s2) &&
				len(cmd.ShopIDs()) == 2 && len(cmd.AddressIDs()) == 1
		})).Return(newTestOrder(t, buyer.UserID), nil)

		// When
		rec := f.do(http.MethodPost, "/api/orders", raw, payload)

		// Then
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		f.create.AssertExpectations(t)
	})

	t.Run("body violating the contract", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)

		rec := f.do(http.MethodPost, "/api/orders", raw, `{"currency":"EUR","products":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("non-positive price is a validation error", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)

		rec := f.do(http.MethodPost, "/api/orders", raw, body("0"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "validation failed", resp.Message)
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("prices beyond cents or storable range are rejected", func(t *testing.T) {
		for _, price := range []string{"10.005", "1000000000000000"} {
			f := newFixture(t)
			raw, _ := f.token(identity.RoleBuyer)

			rec := f.do(http.MethodPost, "/api/orders", raw, body(price))

			assert.Equal(t, http.StatusBadRequest, rec.Code, price)
			f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		}
	})

	t.Run("product of a shop outside the order", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)
		f.create.On("Handle", mock.Anything, mock.Anything).Return(nil, order.ErrProductShopNotInOrder)

		rec := f.do(http.MethodPost, "/api/orders", raw, body("5"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func Test_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		raw, buyer := f.token(identity.RoleBuyer)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderResponse{Number: "7KQ2M9XA1B", BuyerID: buyer.UserID.String(), Total: "10"}, nil)

		rec := f.do(http.MethodGet, "/api/orders/7KQ2M9XA1B", raw, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"number":"7KQ2M9XA1B"`)
	})

	t.Run("read access follows the order's parties", func(t *testing.T) {
		buyerID := kernel.NewUUID().String()
		delivererID := kernel.NewUUID().String()

		tests := []struct {
			name      string
			role      identity.Role
			asBuyer   bool
			asCourier bool
			assigned  bool
			want      int
		}{
			{name: "own order", role: identity.RoleBuyer, asBuyer: true, want: http.StatusOK},
			{name: "another buyer", role: identity.RoleBuyer, want: http.StatusForbidden},
			{name: "admin", role: identity.RoleAdmin, assigned: true, want: http.StatusOK},
			{name: "assigned deliverer", role: identity.RoleDeliverer, asCourier: true, assigned: true, want: http.StatusOK},
			{name: "other deliverer", role: identity.RoleDeliverer, assigned: true, want: http.StatusForbidden},
			{name: "deliverer before assignment", role: identity.RoleDeliverer, want: http.StatusOK},
			{name: "shop owner", role: identity.RoleShopOwner, want: http.StatusForbidden},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given
				f := newFixture(t)
				raw, caller := f.token(tt.role)
				resp := queries.OrderResponse{Number: "7KQ2M9XA1B", BuyerID: buyerID, Total: "10"}
				if tt.asBuyer {
					resp.BuyerID = caller.UserID.String()
				}
				if tt.assigned {
					id := delivererID
					if tt.asCourier {
						id = caller.UserID.String()
					}
					resp.DelivererID = &id
				}
				f.get.On("Handle", mock.Anything, mock.Anything).Return(resp, nil)

				// When
				rec := f.do(http.MethodGet, "/api/orders/7KQ2M9XA1B", raw, "")

				// Then
				assert.Equal(t, tt.want, rec.Code)
				if tt.want == http.StatusForbidden {
					assert.NotContains(t, rec.Body.String(), buyerID)
				}
			})
		}
	})

	t.Run("unknown number", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderResponse{}, errs.NewObjectNotFoundError("orderNumber", "7KQ2M9XA1B"))

		rec := f.do(http.MethodGet, "/api/orders/7KQ2M9XA1B", raw, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "orderNumber not found", decodeError(t, rec).Message)
	})

	t.Run("store failure is hidden", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleBuyer)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderResponse{}, assert.AnError)

		rec := f.do(http.MethodGet, "/api/orders/7KQ2M9XA1B", raw, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}

func Test_ShopRoutes(t *testing.T) {
	shopID := kernel.NewUUID().String()

	t.Run("list by shop and status", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderResponse{{Number: "7KQ2M9XA1B"}}, nil)

		rec := f.do(http.MethodGet, "/api/orders/shop/"+shopID+"/status/accepted", raw, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		f.list.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)

		rec := f.do(http.MethodGet, "/api/orders/status/shipped", raw, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("shop view", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)
		f.views.On("Get", mock.Anything, mock.Anything).Return(queries.ShopOrderViewResponse{
			Number:        "7KQ2M9XA1B",
			DelivererName: queries.NoDeliverer,
		}, nil)

		rec := f.do(http.MethodGet, "/api/orders/shop/"+shopID+"/7KQ2M9XA1B", raw, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"delivererName":"none"`)
	})

	t.Run("status and pickup time in one call", func(t *testing.T) {
		// Given
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)
		f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateShopOrderCommand) bool {
			status, hasStatus := cmd.Status()
			pickupTime, hasPickup := cmd.PickupTime()
			return hasStatus && status == order.Accepted && hasPickup && pickupTime == "18:30"
		})).Return(shopID+" status set to accepted for 7KQ2M9XA1B", nil).Once()

		// When
		rec := f.do(http.MethodPut, "/api/orders/shop/"+shopID+"/7KQ2M9XA1B", raw,
			`{"status":"accepted","pickupTime":"18:30"}`)

		// Then
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"message":"`+shopID+` status set to accepted for 7KQ2M9XA1B"}`, rec.Body.String())
		f.update.AssertExpectations(t)
	})

	t.Run("refused pickup time reports the conflict only", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)
		f.update.On("Handle", mock.Anything, mock.Anything).
			Return("", errs.NewConflictError("pickupTime")).Once()

		rec := f.do(http.MethodPut, "/api/orders/shop/"+shopID+"/7KQ2M9XA1B", raw,
			`{"status":"preparing","pickupTime":"12:00"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		f.update.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("illegal transition", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)
		f.update.On("Handle", mock.Anything, mock.Anything).Return("", order.ErrIllegalStatusTransition)

		rec := f.do(http.MethodPut, "/api/orders/shop/"+shopID+"/7KQ2M9XA1B", raw, `{"status":"waiting"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleShopOwner)

		rec := f.do(http.MethodPut, "/api/orders/shop/"+shopID+"/7KQ2M9XA1B", raw, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func Test_AdminRoutes(t *testing.T) {
	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleAdmin)
		f.remove.On("Handle", mock.Anything, mock.Anything).Return("7KQ2M9XA1B was removed!", nil)

		rec := f.do(http.MethodDelete, "/api/orders/7KQ2M9XA1B", raw, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"7KQ2M9XA1B was removed!"}`, rec.Body.String())
	})

	t.Run("correct currency", func(t *testing.T) {
		f := newFixture(t)
		raw, _ := f.token(identity.RoleAdmin)
		corrected := newTestOrder(t, kernel.NewUUID())
		f.correct.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CorrectOrderCommand) bool {
			return cmd.Currency() != nil && cmd.Currency().String() == "USD" && cmd.Shops() == nil
		})).Return(corrected, nil)

		rec := f.do(http.MethodPut, "/api/orders/7KQ2M9XA1B", raw, `{"currency":"USD"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f.correct.AssertExpectations(t)
	})

	t.Run("deliverer assignment by a deliverer", func(t *testing.T) {
		f := newFixture(t)
		raw, p := f.token(identity.RoleDeliverer)
		f.assign.On("Handle", mock.Anything, mock.Anything).Return(nil)

		rec := f.do(http.MethodPut, "/api/orders/7KQ2M9XA1B/deliverer", raw,
			`{"delivererId":"`+p.UserID.String()+`"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), p.UserID.String())
	})
}

func Test_MetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodGet, "/health", "", "")

	rec := f.do(http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_request_duration_seconds`)
	assert.Contains(t, rec.Body.String(), `route="/health"`)
}

func Test_Realtime(t *testing.T) {
	wsURL := func(server *httptest.Server, path string) string {
		return "ws" + strings.TrimPrefix(server.URL, "http") + path
	}

	t.Run("snapshot on connect and goodbye on shutdown", func(t *testing.T) {
		// Given
		f := newFixture(t)
		server := httptest.NewServer(f.e)
		defer server.Close()
		raw, _ := f.token(identity.RoleAdmin)

		// When
		conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "/api/orders/realtime?token="+raw), nil)
		require.NoError(t, err)
		defer conn.Close()

		// Then
		_, frame, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"topic":"orders"}`, string(frame))
		assert.Equal(t, 1, f.hub.SubscriberCount())

		f.hub.Close()
		_, _, err = conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	})

	t.Run("client disconnect unsubscribes", func(t *testing.T) {
		f := newFixture(t)
		server := httptest.NewServer(f.e)
		defer server.Close()
		raw, _ := f.token(identity.RoleShopOwner)
		shopID := kernel.NewUUID().String()

		conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "/api/orders/shop/realtime/"+shopID+"?token="+raw), nil)
		require.NoError(t, err)
		_, frame, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(frame), shopID)

		require.NoError(t, conn.Close())

		assert.Eventually(t, func() bool { return f.hub.SubscriberCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("shop stream needs a valid shop id", func(t *testing.T) {
		f := newFixture(t)
		server := httptest.NewServer(f.e)
		defer server.Close()
		raw, _ := f.token(identity.RoleShopOwner)

		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "/api/orders/shop/realtime/nope?token="+raw), nil)

		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin stream refuses shop owners", func(t *testing.T) {
		f := newFixture(t)
		server := httptest.NewServer(f.e)
		defer server.Close()
		raw, _ := f.token(identity.RoleShopOwner)

		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "/api/orders/realtime?token="+raw), nil)

		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
