package services_test

import (
	"testing"

	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestAlertAggregator_Aggregate(t *testing.T) {
	branchID := kernel.NewUUID()
	aggregator := services.NewAlertAggregator(5)

	t.Run("ranks by priority and keeps definition order inside a priority", func(t *testing.T) {
		got := aggregator.Aggregate(branchID, services.BranchSnapshot{
			SLABreached:    2,
			OpenExceptions: 1,
			Stuck:          4,
			AwaitingPickup: 3,
			CODAwaiting:    6,
			OutForDelivery: 9,
		})

		keys := make([]string, 0, len(got))
		for _, a := range got {
			keys = append(keys, a.Key)
		}
		assert.Equal(t, []string{
			"sla_breached", "open_exceptions", "stuck", "awaiting_pickup", "cod_backlog", "out_for_delivery",
		}, keys)
		assert.Equal(t, services.PriorityCritical, got[0].Priority)
		assert.Equal(t, 2, got[0].Count)
		assert.Contains(t, got[0].ActionRoute, branchID.String())
		assert.Equal(t, services.PriorityLow, got[len(got)-1].Priority)
	})

	t.Run("omits zero counts and cod below threshold", func(t *testing.T) {
		got := aggregator.Aggregate(branchID, services.BranchSnapshot{CODAwaiting: 5, OutForDelivery: 1})

		assert.Len(t, got, 1)
		assert.Equal(t, "out_for_delivery", got[0].Key)
		assert.Equal(t, "LOW", got[0].Priority.String())
	})

	t.Run("empty snapshot yields nothing", func(t *testing.T) {
		assert.Empty(t, aggregator.Aggregate(branchID, services.BranchSnapshot{}))
	})
}
