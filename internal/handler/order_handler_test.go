package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bulkmart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder(status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:             uuid.New(),
		ProductID:      "sugar",
		ProductName:    "Sugar",
		WholesalerID:   wholesaler.UserID,
		WholesalerName: wholesaler.Name,
		RetailerID:     retailer.UserID,
		Qty:            50,
		Unit:           "kg",
		PricePerUnit:   decimal.RequireFromString("38.5"),
		Status:         status,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestOrderHandler_Transition(t *testing.T) {
	logger := zerolog.Nop()
	order := testOrder(model.OrderStatusConfirmed)

	tests := []struct {
		name           string
		id             string
		requestBody    interface{}
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			id:             order.ID.String(),
			requestBody:    model.TransitionRequest{Status: model.OrderStatusConfirmed},
			mockReturn:     order,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid transition",
			id:             order.ID.String(),
			requestBody:    model.TransitionRequest{Status: model.OrderStatusConfirmed},
			mockError:      model.ErrInvalidTransition,
			expectedStatus: http.StatusConflict,
			expectService:  true,
		},
		{
			name:           "Unknown status",
			id:             order.ID.String(),
			requestBody:    model.TransitionRequest{Status: "packed"},
			mockError:      model.ErrInvalidStatus,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Other wholesaler",
			id:             order.ID.String(),
			requestBody:    model.TransitionRequest{Status: model.OrderStatusShipped},
			mockError:      model.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			id:             order.ID.String(),
			requestBody:    "{status:",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed ID",
			id:             "not-a-uuid",
			requestBody:    model.TransitionRequest{Status: model.OrderStatusConfirmed},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Store down",
			id:             order.ID.String(),
			requestBody:    model.TransitionRequest{Status: model.OrderStatusShipped},
			mockError:      errors.Join(model.ErrStoreUnavailable, errors.New("timeout")),
			expectedStatus: http.StatusServiceUnavailable,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("Transition", mock.Anything, wholesaler, order.ID, mock.AnythingOfType("model.OrderStatus")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/orders/"+tt.id+"/status", bytes.NewBuffer(body))
			req = withRoute(req, &wholesaler, map[string]string{"id": tt.id})
			w := httptest.NewRecorder()

			handler.Transition(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	order := testOrder(model.OrderStatusRequested)

	tests := []struct {
		name           string
		actor          *model.Actor
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{name: "Success", actor: &retailer, mockReturn: order, expectedStatus: http.StatusOK, expectService: true},
		{name: "Not visible", actor: &retailer, mockError: model.ErrOrderNotFound, expectedStatus: http.StatusNotFound, expectService: true},
		{name: "Unauthenticated", actor: nil, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, *tt.actor, order.ID).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID.String(), nil)
			req = withRoute(req, tt.actor, map[string]string{"id": order.ID.String()})
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, order.ID, got.ID)
				assert.True(t, got.PricePerUnit.Equal(order.PricePerUnit))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	expected := model.OrderFilter{Status: model.OrderStatusShipped, Limit: 10, Offset: 20}
	mockService.On("List", mock.Anything, wholesaler, expected).
		Return([]model.Order{*testOrder(model.OrderStatusShipped)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped&limit=10&offset=20", nil)
	req = withRoute(req, &wholesaler, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	mockService.AssertExpectations(t)
}
