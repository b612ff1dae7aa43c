package domain_test

import (
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPayment(t *testing.T) {
	today := domain.NewDate(2024, time.March, 15)
	paid := domain.NewDate(2024, time.March, 1)

	tests := []struct {
		name     string
		dueDate  domain.Date
		paidDate *domain.Date
		want     domain.PaymentStatus
	}{
		{
			name:    "overdue deadline without payment",
			dueDate: domain.NewDate(2024, time.March, 10),
			want:    domain.StatusOverdue,
		},
		{
			name:    "future deadline without payment",
			dueDate: domain.NewDate(2024, time.April, 15),
			want:    domain.StatusUnpaid,
		},
		{
			name:    "deadline today is not yet overdue",
			dueDate: today,
			want:    domain.StatusUnpaid,
		},
		{
			name:     "paid wins even past the deadline",
			dueDate:  domain.NewDate(2024, time.January, 15),
			paidDate: &paid,
			want:     domain.StatusPaid,
		},
		{
			name:     "paid before a future deadline",
			dueDate:  domain.NewDate(2024, time.April, 15),
			paidDate: &paid,
			want:     domain.StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClassifyPayment(tt.dueDate, tt.paidDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyPayment_Total(t *testing.T) {
	// Exactly one of the three statuses for any input triple.
	today := domain.NewDate(2024, time.March, 15)
	paid := domain.NewDate(2024, time.March, 1)
	for _, due := range []domain.Date{today.AddDays(-40), today.AddDays(-1), today, today.AddDays(1), today.AddDays(40)} {
		for _, paidDate := range []*domain.Date{nil, &paid} {
			got := domain.ClassifyPayment(due, paidDate, today)
			assert.Contains(t, []domain.PaymentStatus{domain.StatusPaid, domain.StatusUnpaid, domain.StatusOverdue}, got)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	// Obligation deadline 2024-03-10, unpaid, today 2024-03-15: overdue by 5 days.
	today := domain.NewDate(2024, time.March, 15)
	deadline := domain.NewDate(2024, time.March, 10)

	assert.Equal(t, -5, domain.DaysUntil(deadline, today))
	assert.Equal(t, domain.StatusOverdue, domain.ClassifyPayment(deadline, nil, today))

	assert.Equal(t, 16, domain.DaysUntil(domain.NewDate(2024, time.March, 31), today))
	assert.Equal(t, 0, domain.DaysUntil(today, today))
}

func TestObligationDeadline(t *testing.T) {
	assert.Equal(t, "2024-02-15", domain.ObligationDeadline(2024, time.January).String())
	assert.Equal(t, "2025-01-15", domain.ObligationDeadline(2024, time.December).String())
}
