package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefundStatusTransitions(t *testing.T) {
	cases := []struct {
		from    RefundStatus
		to      RefundStatus
		allowed bool
	}{
		{RefundStatusPending, RefundStatusApproved, true},
		{RefundStatusPending, RefundStatusRejected, true},
		{RefundStatusPending, RefundStatusProcessed, false},
		{RefundStatusApproved, RefundStatusProcessed, true},
		{RefundStatusApproved, RefundStatusRejected, false},
		{RefundStatusApproved, RefundStatusPending, false},
		{RefundStatusRejected, RefundStatusApproved, false},
		{RefundStatusRejected, RefundStatusPending, false},
		{RefundStatusProcessed, RefundStatusPending, false},
		{RefundStatusProcessed, RefundStatusApproved, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}
