package dashboard

import (
	"testing"

	"icoffee-admin/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() Stats {
	return Stats{
		TotalProducts:       120,
		TotalOrders:         340,
		TotalUsers:          85,
		TotalStaff:          14,
		PendingOrders:       12,
		LowStockItems:       7,
		OpenPurchaseOrders:  3,
		StockMovementsToday: 21,
		PublishedPosts:      44,
		DraftPosts:          6,
		ActiveShipments:     9,
		PriceListCount:      4,
	}
}

func TestResolveIsTotal(t *testing.T) {
	stats := sampleStats()

	// Every recognized admin department resolves to a complete bundle.
	for _, subRole := range rbac.AdminSubRoles() {
		config := Resolve(subRole, stats)
		assert.NotEmpty(t, config.Title, "title for %s", subRole)
		assert.NotEmpty(t, config.Description, "description for %s", subRole)
		assert.Len(t, config.Stats, 4, "stats for %s", subRole)
		assert.Len(t, config.QuickActions, 4, "quick actions for %s", subRole)
	}
}

func TestResolveUnknownFallsBackToIT(t *testing.T) {
	stats := sampleStats()
	itDefault := Resolve(rbac.SubRoleIT, stats)

	for _, subRole := range []rbac.SubRole{"", "INTERN", "BTC", "it"} {
		config := Resolve(subRole, stats)
		assert.Equal(t, itDefault, config, "fallback for %q", subRole)
	}
}

func TestResolveUsesProvidedStats(t *testing.T) {
	config := Resolve(rbac.SubRoleWarehouse, sampleStats())

	require.Len(t, config.Stats, 4)
	assert.Equal(t, "Low Stock Items", config.Stats[0].Label)
	assert.Equal(t, int64(7), config.Stats[0].Value)
	assert.Equal(t, int64(21), config.Stats[1].Value)

	// Zero stats resolve too; the function performs no I/O.
	zero := Resolve(rbac.SubRoleWarehouse, Stats{})
	assert.Equal(t, int64(0), zero.Stats[0].Value)
}

func TestQuickActionPathsAreAbsolute(t *testing.T) {
	for _, subRole := range rbac.AdminSubRoles() {
		config := Resolve(subRole, sampleStats())
		for _, action := range config.QuickActions {
			assert.NotEmpty(t, action.Label)
			require.NotEmpty(t, action.Path)
			assert.Equal(t, byte('/'), action.Path[0], "%s action %s", subRole, action.Label)
		}
	}
}
