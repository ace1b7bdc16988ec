package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/medreminder/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacies_List(t *testing.T) {
	e := newTestEnv(t)
	e.pharmacies.list = []models.Pharmacy{{ID: 1, Name: "Central", Address: "1 Main St", City: "Springfield", Phone: "555"}}

	require.NoError(t, e.app.Pharmacies(context.Background()))

	out := e.out.String()
	assert.NotContains(t, out, "KM")
	assert.Regexp(t, `1\s+Central\s+1 Main St, Springfield\s+555`, out)
}

func TestNearby_FromArguments(t *testing.T) {
	e := newTestEnv(t)
	e.pharmacies.list = []models.Pharmacy{{ID: 2, Name: "Corner", DistanceKM: 0.42}}

	require.NoError(t, e.app.Nearby(context.Background(), []string{"40.7128", "-74.006"}))

	assert.Equal(t, 40.7128, e.pharmacies.lat)
	assert.Equal(t, -74.006, e.pharmacies.long)
	assert.Regexp(t, `2\s+0\.4\s+Corner`, e.out.String())
}

func TestNearby_Prompts(t *testing.T) {
	e := newTestEnv(t, "51.5", "-0.12")

	require.NoError(t, e.app.Nearby(context.Background(), nil))

	assert.Equal(t, 51.5, e.pharmacies.lat)
	assert.Equal(t, -0.12, e.pharmacies.long)
	assert.Contains(t, e.out.String(), "No pharmacies")
}

func TestNearby_InvalidCoordinate(t *testing.T) {
	e := newTestEnv(t)

	assert.ErrorIs(t, e.app.Nearby(context.Background(), []string{"north", "1"}), ErrInvalidNumber)
}

func TestAddPharmacy(t *testing.T) {
	e := newTestEnv(t, "Central", "1 Main St", "Springfield", "IL", "US", "555-0100", "39.78", "-89.65")

	require.NoError(t, e.app.AddPharmacy(context.Background()))

	require.Len(t, e.pharmacies.created, 1)
	assert.Equal(t, models.PharmacyInput{
		Name:      "Central",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Country:   "US",
		Phone:     "555-0100",
		Latitude:  39.78,
		Longitude: -89.65,
	}, e.pharmacies.created[0])
	assert.Contains(t, e.out.String(), "Pharmacy 9 created")
}

func TestAddPharmacy_RequiresName(t *testing.T) {
	e := newTestEnv(t, "", "", "", "", "", "")

	assert.ErrorIs(t, e.app.AddPharmacy(context.Background()), ErrMissingArgument)
	assert.Empty(t, e.pharmacies.created)
}
