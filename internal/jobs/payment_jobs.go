package jobs

import (
	"context"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/logger"
)

// ExpireOverduePayments cancels every pending payment past its due date.
// One conditional update; payments confirmed in the meantime are untouched.
func (jr *JobRunner) ExpireOverduePayments() {
	jr.runWithRecovery("ExpireOverduePayments", func() {
		ctx := context.Background()

		expired, err := jr.store.PaymentRepository.ExpireOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire overdue payments", "error", err)
			return
		}
		logger.Info("Expired overdue payments", "count", expired)
	})
}

// SendPaymentReminders emails clients whose pending payment falls due within
// the next 24 hours.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		query := `
			SELECT p.id, p.rental_id, p.method, p.amount_cents, p.status, p.due_date,
			       p.pix_key, p.pix_qr_code, p.boleto_barcode, p.boleto_line,
			       u.id, u.username, u.email
			FROM payments p
			JOIN rentals r ON r.id = p.rental_id
			JOIN client_profiles cp ON cp.id = r.profile_id
			JOIN users u ON u.id = cp.user_id
			WHERE p.status = 'PENDING'
			AND p.due_date BETWEEN NOW() AND NOW() + INTERVAL '24 hours'
		`
		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load payments due soon", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var p domain.Payment
			var userID int32
			var username, email string
			if err := rows.Scan(&p.ID, &p.RentalID, &p.Method, &p.AmountCents, &p.Status, &p.DueDate,
				&p.PixKey, &p.PixQRCode, &p.BoletoBarcode, &p.BoletoLine,
				&userID, &username, &email); err != nil {
				logger.Error("Failed to scan payment reminder row", "error", err)
				continue
			}

			if err := jr.emailSvc.SendPaymentPending(ctx, email, username, &p); err != nil {
				logger.Error("Failed to send payment reminder",
					"payment_id", p.ID,
					"user_id", userID,
					"error", err)
				continue
			}
			sent++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed iterating payment reminder rows", "error", err)
		}

		logger.Info("Payment reminders sent", "count", sent)
	})
}
