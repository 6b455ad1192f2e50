package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/service"
)

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(newRealStore())

	rows := svc.Export(context.Background())

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RowsPerCategory(t *testing.T) {
	st := newRealStore()
	ctx := context.Background()
	day := st.CreateTrip(ctx, "Day", domain.TripTypeDayTrip)
	st.CreateTrip(ctx, "Camp", domain.TripTypeCamping)
	st.UpdatePlannedCosts(ctx, day.ID, domain.CostBreakdown{}.With(domain.CategoryFood, 250))

	rows := service.NewExportService(st).Export(ctx)

	dayCfg, _ := domain.TripTypeDayTrip.Config()
	campCfg, _ := domain.TripTypeCamping.Config()
	require.Len(t, rows, len(dayCfg.Categories)+len(campCfg.Categories))
	assert.Equal(t, "Day", rows[0].TripName)
	assert.Equal(t, "Camp", rows[len(rows)-1].TripName)
}

func TestExportService_WriteCSV(t *testing.T) {
	st := newRealStore()
	ctx := context.Background()
	trip := st.CreateTrip(ctx, "Day, with comma", domain.TripTypeDayTrip)
	st.UpdatePlannedCosts(ctx, trip.ID, domain.CostBreakdown{}.With(domain.CategoryFood, 250.5))

	var buf bytes.Buffer
	err := service.NewExportService(st).WriteCSV(ctx, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(records), 1)
	assert.Equal(t, "trip_id", records[0][0])

	var food []string
	for _, r := range records[1:] {
		if r[6] == domain.CategoryFood.Label() {
			food = r
		}
	}
	require.NotNil(t, food, "food row present for a day trip")
	assert.Equal(t, "Day, with comma", food[1])
	assert.Equal(t, "250.50", food[8])
	assert.Equal(t, "0.00", food[9])
	assert.Equal(t, "PHP", food[10])
}
