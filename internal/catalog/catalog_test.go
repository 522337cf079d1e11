package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprayguard/internal/models"
)

func products(options []models.FungicideOption) []string {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Product
	}
	return names
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, models.Diseases, c.Diseases())

	rust, err := c.Options(models.DiseaseRust)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tilt", "Elatus Ace", "Trivapro"}, products(rust))
	assert.Equal(t, []models.MoAGroup{models.Group3, models.Group7, models.Group11}, c.Groups(models.DiseaseRust))
	assert.Equal(t, []models.MoAGroup{models.Group3, models.Group7, models.Group11}, c.Groups(models.DiseaseSclerotinia))
}

func TestOptionsReturnsCopies(t *testing.T) {
	c := Default()
	first, err := c.Options(models.DiseaseSeptoria)
	require.NoError(t, err)
	first[0].Product = "Changed"
	first[0].Groups[0] = models.Group11

	second, err := c.Options(models.DiseaseSeptoria)
	require.NoError(t, err)
	assert.Equal(t, "Prosaro", second[0].Product)
	assert.Equal(t, []models.MoAGroup{models.Group3}, second[0].Groups)
}

func TestOptionsNoCatalog(t *testing.T) {
	c, err := New(map[models.Disease][]models.FungicideOption{
		models.DiseaseRust: {{Product: "Tilt", Activity: models.ActivityCurative}},
	})
	require.NoError(t, err)

	_, err = c.Options(models.DiseaseBlackleg)
	assert.True(t, errors.Is(err, models.ErrNoCatalog))
}

func TestNewInfersGroups(t *testing.T) {
	c, err := New(map[models.Disease][]models.FungicideOption{
		models.DiseaseRust: {
			{Product: "Tilt", Activity: models.ActivityCurative},
			{Product: "Newcomer", Label: "Group 7 - SDHI", Activity: models.ActivityProtective},
		},
	})
	require.NoError(t, err)

	options, err := c.Options(models.DiseaseRust)
	require.NoError(t, err)
	assert.Equal(t, []models.MoAGroup{models.Group3}, options[0].Groups)
	assert.Equal(t, []models.MoAGroup{models.Group7}, options[1].Groups)
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries map[models.Disease][]models.FungicideOption
	}{
		{"missing product", map[models.Disease][]models.FungicideOption{
			models.DiseaseRust: {{Activity: models.ActivityCurative, Groups: []models.MoAGroup{models.Group3}}},
		}},
		{"unknown groups", map[models.Disease][]models.FungicideOption{
			models.DiseaseRust: {{Product: "Mystery", Activity: models.ActivityCurative}},
		}},
		{"unknown activity", map[models.Disease][]models.FungicideOption{
			models.DiseaseRust: {{Product: "Tilt", Activity: "eradicant"}},
		}},
		{"unknown disease", map[models.Disease][]models.FungicideOption{
			"ergot": {{Product: "Tilt", Activity: models.ActivityCurative}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestFilter(t *testing.T) {
	sclerotinia, err := Default().Options(models.DiseaseSclerotinia)
	require.NoError(t, err)

	t.Run("nothing used keeps everything", func(t *testing.T) {
		result := Filter(sclerotinia, FilterInput{})
		assert.Equal(t, []string{"Prosaro", "Miravis Star", "Aviator Xpro"}, products(result.Options))
		assert.Empty(t, result.Removed)
		assert.False(t, result.NoCompliantOption)
	})

	t.Run("SDHI used removes Group 7", func(t *testing.T) {
		result := Filter(sclerotinia, FilterInput{Usage: models.MoAUsage{SDHIUsed: true, Group7Count: 1}})
		assert.Equal(t, []string{"Prosaro", "Aviator Xpro"}, products(result.Options))
		require.Len(t, result.Removed, 1)
		assert.Equal(t, models.RemovedOption{Product: "Miravis Star", Reason: ReasonSDHIUsed}, result.Removed[0])
		for _, o := range result.Options {
			assert.False(t, o.HasGroup(models.Group7))
		}
	})

	t.Run("QoI at limit removes Group 11", func(t *testing.T) {
		result := Filter(sclerotinia, FilterInput{Usage: models.MoAUsage{Group11Used: true, Group11Count: Group11SprayLimit}})
		assert.Equal(t, []string{"Prosaro", "Miravis Star"}, products(result.Options))
	})

	t.Run("visible disease keeps curative only", func(t *testing.T) {
		result := Filter(sclerotinia, FilterInput{DiseaseVisible: true})
		assert.Equal(t, []string{"Prosaro", "Aviator Xpro"}, products(result.Options))
	})

	t.Run("everything filtered is flagged", func(t *testing.T) {
		onlySDHI := []models.FungicideOption{
			{Product: "Miravis Star", Groups: []models.MoAGroup{models.Group3, models.Group7}, Activity: models.ActivityProtective},
		}
		result := Filter(onlySDHI, FilterInput{Usage: models.MoAUsage{SDHIUsed: true}})
		assert.NotNil(t, result.Options)
		assert.Empty(t, result.Options)
		assert.True(t, result.NoCompliantOption)
		assert.Equal(t, NoCompliantNotice, result.Notice)
	})
}

func TestFilterIsSubsetPreservingOrder(t *testing.T) {
	for _, disease := range models.Diseases {
		options, err := Default().Options(disease)
		require.NoError(t, err)

		inputs := []FilterInput{
			{},
			{Usage: models.MoAUsage{SDHIUsed: true}},
			{Usage: models.MoAUsage{Group11Count: 2}},
			{DiseaseVisible: true},
			{Usage: models.MoAUsage{SDHIUsed: true, Group11Count: 1}, DiseaseVisible: true},
		}
		for _, in := range inputs {
			result := Filter(options, in)
			assert.Equal(t, len(options), len(result.Options)+len(result.Removed))

			j := 0
			for _, o := range options {
				if j < len(result.Options) && result.Options[j].Product == o.Product {
					j++
				}
			}
			assert.Equal(t, len(result.Options), j, "%s: filtered options out of catalog order", disease)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	for _, disease := range models.Diseases {
		options, err := Default().Options(disease)
		require.NoError(t, err)

		inputs := []FilterInput{
			{},
			{Usage: models.MoAUsage{SDHIUsed: true}},
			{Usage: models.MoAUsage{Group11Count: 2}},
			{DiseaseVisible: true},
			{Usage: models.MoAUsage{SDHIUsed: true, Group11Count: 1}, DiseaseVisible: true},
		}
		for _, in := range inputs {
			once := Filter(options, in)
			twice := Filter(once.Options, in)

			assert.Equal(t, products(once.Options), products(twice.Options), "%s: second pass changed the options", disease)
			assert.Empty(t, twice.Removed, "%s: second pass removed options", disease)
			assert.Equal(t, once.NoCompliantOption, twice.NoCompliantOption)
		}
	}
}

func TestLoad(t *testing.T) {
	content := `catalogs:
  rust:
    - product: Tilt
      label: Group 3 - DMI
      persistence: 10-14 days
      activity: curative
      cost_per_ha: 18.5
    - product: Custom SDHI
      groups: ["7"]
      persistence: 21 days
      activity: protective
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	options, err := c.Options(models.DiseaseRust)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, []models.MoAGroup{models.Group3}, options[0].Groups)
	require.NotNil(t, options[0].CostPerHa)
	assert.Equal(t, 18.5, *options[0].CostPerHa)
	assert.Equal(t, []models.MoAGroup{models.Group7}, options[1].Groups)

	_, err = c.Options(models.DiseaseSeptoria)
	assert.ErrorIs(t, err, models.ErrNoCatalog)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/catalog.yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("catalogs: [not: a map"))
	assert.Error(t, err)

	_, err = Parse([]byte("other: 1\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Len(t, c.Diseases(), len(models.Diseases))
}
