package repositories

import (
	"context"
	"testing"

	"github.com/Ak47-369/bookticket-payment-service/internal/domain"
	"github.com/Ak47-369/bookticket-payment-service/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaymentTest(t *testing.T) (*PaymentRepo, *gorm.DB) {
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	repo := &PaymentRepo{db: db}
	return repo, db
}

func pendingPayment(bookingID int64, transactionID string) *domain.Payment {
	return &domain.Payment{
		BookingID:     bookingID,
		UserID:        7,
		Amount:        decimal.NewFromFloat(250.00),
		Currency:      "inr",
		PaymentMethod: "hosted_checkout",
		TransactionID: transactionID,
		Status:        domain.PaymentStatusPending,
	}
}

func TestPaymentCreate_And_FindByTransactionID(t *testing.T) {
	repo, _ := setupPaymentTest(t)
	ctx := context.Background()

	payment := pendingPayment(42, "cs_A")
	err := repo.Create(ctx, payment)
	require.NoError(t, err)
	assert.NotZero(t, payment.ID)

	found, err := repo.FindByTransactionID(ctx, "cs_A")
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, payment.ID, found.ID)
	assert.Equal(t, int64(42), found.BookingID)
	assert.True(t, decimal.NewFromFloat(250.00).Equal(found.Amount))
	assert.Equal(t, domain.PaymentStatusPending, found.Status)
}

func TestPaymentCreate_DuplicateTransactionID(t *testing.T) {
	repo, _ := setupPaymentTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingPayment(42, "cs_dup")))

	err := repo.Create(ctx, pendingPayment(43, "cs_dup"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)
}

func TestPaymentFind_NotFound(t *testing.T) {
	repo, _ := setupPaymentTest(t)
	ctx := context.Background()

	found, err := repo.FindByTransactionID(ctx, "cs_missing")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByBookingID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPaymentFindByStatus_Snapshot(t *testing.T) {
	repo, _ := setupPaymentTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingPayment(1, "cs_1")))
	require.NoError(t, repo.Create(ctx, pendingPayment(2, "cs_2")))

	completed := pendingPayment(3, "cs_3")
	completed.Status = domain.PaymentStatusCompleted
	require.NoError(t, repo.Create(ctx, completed))

	pending, err := repo.FindByStatus(ctx, domain.PaymentStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	done, err := repo.FindByStatus(ctx, domain.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Len(t, done, 1)
}

func TestPaymentAuditStamps(t *testing.T) {
	repo, _ := setupPaymentTest(t)

	// No principal in context: reaper-style write.
	systemCtx := context.Background()
	p1 := pendingPayment(10, "cs_audit_1")
	require.NoError(t, repo.Create(systemCtx, p1))
	assert.Equal(t, "system", p1.CreatedBy)
	assert.Equal(t, "system", p1.UpdatedBy)

	// Request principal present.
	userCtx := domain.WithPrincipal(context.Background(), domain.Principal{
		UserID: "7",
		Roles:  []string{domain.RoleServiceAccount},
	})
	p2 := pendingPayment(11, "cs_audit_2")
	require.NoError(t, repo.Create(userCtx, p2))
	assert.Equal(t, "user-7", p2.CreatedBy)

	// Principal with no user id.
	blankCtx := domain.WithPrincipal(context.Background(), domain.Principal{})
	p3 := pendingPayment(12, "cs_audit_3")
	require.NoError(t, repo.Create(blankCtx, p3))
	assert.Equal(t, "system-default", p3.CreatedBy)

	// Update refreshes only the updater.
	p1.Status = domain.PaymentStatusFailed
	require.NoError(t, repo.Update(userCtx, p1))
	assert.Equal(t, "system", p1.CreatedBy)
	assert.Equal(t, "user-7", p1.UpdatedBy)
}

func TestPaymentUpdateInTx(t *testing.T) {
	repo, db := setupPaymentTest(t)
	ctx := context.Background()

	payment := pendingPayment(20, "cs_tx")
	require.NoError(t, repo.Create(ctx, payment))

	err := db.Transaction(func(tx *gorm.DB) error {
		row, err := repo.FindByTransactionIDForUpdate(ctx, tx, "cs_tx")
		require.NoError(t, err)
		require.NotNil(t, row)

		row.Status = domain.PaymentStatusCompleted
		row.PaymentIntentID = "pi_X"
		return repo.UpdateInTx(ctx, tx, row)
	})
	require.NoError(t, err)

	found, err := repo.FindByTransactionID(ctx, "cs_tx")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, found.Status)
	assert.Equal(t, "pi_X", found.PaymentIntentID)
}
