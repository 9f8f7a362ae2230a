package checkout

import (
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("user-1")
	require.NoError(t, s.SelectAddress("addr-1"))
	s.CheckoutData = &models.BillBreakdown{TotalAmount: 500}
	require.NoError(t, s.ToSummary())
	return s
}

func TestNewSession_StartsAtAddressStep(t *testing.T) {
	s := NewSession("user-1")

	assert.Equal(t, models.StepAddress, s.Step)
	assert.Empty(t, s.AddressID)
	assert.Empty(t, s.PaymentMethod)
	assert.Nil(t, s.CheckoutData)
}

func TestSession_ToSummaryRequiresAddress(t *testing.T) {
	s := NewSession("user-1")

	assert.ErrorIs(t, s.ToSummary(), ErrAddressRequired)

	require.NoError(t, s.SelectAddress("addr-1"))
	require.NoError(t, s.ToSummary())
	assert.Equal(t, models.StepSummary, s.Step)
}

func TestSession_SelectAddressOnlyOnAddressStep(t *testing.T) {
	s := summarySession(t)

	assert.ErrorIs(t, s.SelectAddress("addr-2"), ErrInvalidTransition)
	assert.Equal(t, "addr-1", s.AddressID)
}

func TestSession_ToPaymentBlockedByCartIssues(t *testing.T) {
	s := summarySession(t)

	assert.ErrorIs(t, s.ToPayment(true), ErrBlockingIssues)
	assert.Equal(t, models.StepSummary, s.Step, "blocked advance must not move the step")

	require.NoError(t, s.ToPayment(false))
	assert.Equal(t, models.StepPayment, s.Step)
}

func TestSession_ToPaymentRequiresComputedBill(t *testing.T) {
	s := NewSession("user-1")
	require.NoError(t, s.SelectAddress("addr-1"))
	require.NoError(t, s.ToSummary())
	s.CheckoutData = nil

	assert.ErrorIs(t, s.ToPayment(false), ErrInvalidTransition)
}

func TestSession_SelectPaymentMethodOnlyOnPaymentStep(t *testing.T) {
	s := summarySession(t)
	assert.ErrorIs(t, s.SelectPaymentMethod(models.PaymentMethodCOD), ErrInvalidTransition)

	require.NoError(t, s.ToPayment(false))
	require.NoError(t, s.SelectPaymentMethod(models.PaymentMethodCOD))
	assert.Equal(t, models.PaymentMethodCOD, s.PaymentMethod)
}

func TestSession_BackClearsAbandonedStepState(t *testing.T) {
	s := summarySession(t)
	require.NoError(t, s.ToPayment(false))
	require.NoError(t, s.SelectPaymentMethod(models.PaymentMethodUPI))

	// payment → summary: the method selection never survives.
	require.NoError(t, s.Back())
	assert.Equal(t, models.StepSummary, s.Step)
	assert.Empty(t, s.PaymentMethod)
	assert.NotNil(t, s.CheckoutData, "the bill belongs to summary and survives")

	// summary → address: the computed bill goes too.
	require.NoError(t, s.Back())
	assert.Equal(t, models.StepAddress, s.Step)
	assert.Nil(t, s.CheckoutData)
	assert.Equal(t, "addr-1", s.AddressID, "the address selection itself is kept")

	// address is the first step.
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}

func TestSession_MarkPlaced(t *testing.T) {
	s := summarySession(t)
	require.NoError(t, s.ToPayment(false))
	require.NoError(t, s.SelectPaymentMethod(models.PaymentMethodCOD))

	order := &models.PlaceOrderResponse{OrderID: "o-1", OrderNumber: "VAS-00001", TotalAmount: 500}
	s.MarkPlaced(order)

	assert.Equal(t, models.StepPlaced, s.Step)
	require.NotNil(t, s.OrderData)
	assert.Equal(t, "VAS-00001", s.OrderData.OrderNumber)
}
