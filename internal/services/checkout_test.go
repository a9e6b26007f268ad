package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/joaquinrv/tienda-platform/internal/repositories/mocks"
	service "github.com/joaquinrv/tienda-platform/internal/services"
	"github.com/joaquinrv/tienda-platform/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const session = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

type fakeEmailService struct {
	sent int
	err  error
}

func (f *fakeEmailService) SendReceipt(ctx context.Context, to string, sale *models.Sale, lines []models.SaleLine) error {
	f.sent++
	return f.err
}

var _ email.Service = (*fakeEmailService)(nil)

func TestCheckoutService_Checkout(t *testing.T) {

	t.Run("Success_SendsReceipt", func(t *testing.T) {
		mockSaleRepo := new(mocks.SaleRepository)
		mockUserRepo := new(mocks.UserRepository)
		mailer := &fakeEmailService{}
		checkoutService := service.NewCheckoutService(mockSaleRepo, mockUserRepo, mailer, false)

		ctx := context.Background()

		mockSaleRepo.On("Checkout", ctx, session, int64(1), false).Return(int64(42), nil).Once()
		mockUserRepo.On("GetUserByID", ctx, int64(1)).
			Return(&models.User{ID: 1, Email: "joaquin@gmail.com"}, nil).Once()
		mockSaleRepo.On("GetSale", ctx, int64(42)).
			Return(&models.Sale{ID: 42, UserID: 1, Total: 30}, nil).Once()
		mockSaleRepo.On("GetSaleLines", ctx, int64(42)).
			Return([]models.SaleLine{{SaleID: 42, Name: "Mate cup", Price: 10, Quantity: 3}}, nil).Once()

		resp, err := checkoutService.Checkout(ctx, session, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.SaleID)
		assert.Equal(t, 1, mailer.sent)
		mockSaleRepo.AssertExpectations(t)
	})

	t.Run("Success_EmailFailureDoesNotFailSale", func(t *testing.T) {
		mockSaleRepo := new(mocks.SaleRepository)
		mockUserRepo := new(mocks.UserRepository)
		mailer := &fakeEmailService{err: errors.New("sendgrid unavailable")}
		checkoutService := service.NewCheckoutService(mockSaleRepo, mockUserRepo, mailer, false)

		ctx := context.Background()

		mockSaleRepo.On("Checkout", ctx, session, int64(1), false).Return(int64(43), nil).Once()
		mockUserRepo.On("GetUserByID", ctx, int64(1)).
			Return(&models.User{ID: 1, Email: "joaquin@gmail.com"}, nil).Once()
		mockSaleRepo.On("GetSale", ctx, int64(43)).
			Return(&models.Sale{ID: 43, UserID: 1, Total: 10}, nil).Once()
		mockSaleRepo.On("GetSaleLines", ctx, int64(43)).
			Return([]models.SaleLine{{SaleID: 43, Name: "Mate cup", Price: 10, Quantity: 1}}, nil).Once()

		resp, err := checkoutService.Checkout(ctx, session, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(43), resp.SaleID)
	})

	t.Run("RemoveSoldOutForwarded", func(t *testing.T) {
		mockSaleRepo := new(mocks.SaleRepository)
		checkoutService := service.NewCheckoutService(mockSaleRepo, new(mocks.UserRepository), nil, true)

		ctx := context.Background()

		mockSaleRepo.On("Checkout", ctx, session, int64(1), true).Return(int64(44), nil).Once()

		_, err := checkoutService.Checkout(ctx, session, 1)

		require.NoError(t, err)
		mockSaleRepo.AssertExpectations(t)
	})

	errorCases := []struct {
		name       string
		repoErr    error
		wantCode   string
		wantStatus int
	}{
		{"EmptyCart", repository.ErrEmptyCart, appErrors.ErrCodeEmptyCart, 400},
		{"InvalidTotal", repository.ErrInvalidTotal, appErrors.ErrCodeInvalidTotal, 400},
		{"InsufficientFunds", repository.ErrInsufficientFunds, appErrors.ErrCodeInsufficientFunds, 400},
		{"InsufficientStock", &repository.StockError{ProductID: 7, ProductName: "Mate cup"}, appErrors.ErrCodeInsufficientStock, 400},
		{"AccountNotFound", repository.ErrAccountNotFound, appErrors.ErrCodeNotFound, 404},
		{"CommitFailure", errors.New("connection reset"), appErrors.ErrCodeCommitFailed, 500},
	}

	for _, tc := range errorCases {
		t.Run("Failure_"+tc.name, func(t *testing.T) {
			mockSaleRepo := new(mocks.SaleRepository)
			checkoutService := service.NewCheckoutService(mockSaleRepo, new(mocks.UserRepository), nil, false)

			ctx := context.Background()

			mockSaleRepo.On("Checkout", ctx, session, int64(1), false).Return(int64(0), tc.repoErr).Once()

			_, err := checkoutService.Checkout(ctx, session, 1)

			var appErr *appErrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.Equal(t, tc.wantStatus, appErr.StatusCode)
		})
	}

	t.Run("Failure_StockErrorNamesProduct", func(t *testing.T) {
		mockSaleRepo := new(mocks.SaleRepository)
		checkoutService := service.NewCheckoutService(mockSaleRepo, new(mocks.UserRepository), nil, false)

		ctx := context.Background()

		mockSaleRepo.On("Checkout", ctx, session, int64(1), false).
			Return(int64(0), &repository.StockError{ProductID: 7, ProductName: "Mate cup"}).Once()

		_, err := checkoutService.Checkout(ctx, session, 1)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Message, "Mate cup")
		mockSaleRepo.AssertNotCalled(t, "GetSale", mock.Anything, mock.Anything)
	})
}
