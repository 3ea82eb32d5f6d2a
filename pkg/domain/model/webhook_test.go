package model_test

import (
	"testing"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

func TestDelivery_IsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		delivery *model.Delivery
		expected bool
	}{
		{
			name:     "Delivered",
			delivery: &model.Delivery{Outcome: model.DeliveryDelivered, StatusCode: 200},
			expected: true,
		},
		{
			name:     "Rejected by endpoint",
			delivery: &model.Delivery{Outcome: model.DeliveryRejected, StatusCode: 500},
			expected: false,
		},
		{
			name:     "Transport failure",
			delivery: &model.Delivery{Outcome: model.DeliveryFailed},
			expected: false,
		},
		{
			name:     "Skipped",
			delivery: &model.Delivery{Outcome: model.DeliverySkipped},
			expected: false,
		},
		{
			name:     "Nil delivery",
			delivery: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.delivery.IsSuccess()
			if got != tt.expected {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEmissionMode_IsValid(t *testing.T) {
	tests := []struct {
		mode     model.EmissionMode
		expected bool
	}{
		{mode: model.EmitAccumulateAll, expected: true},
		{mode: model.EmitFirstMatch, expected: true},
		{mode: model.EmissionMode("all"), expected: false},
		{mode: model.EmissionMode(""), expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := tt.mode.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
