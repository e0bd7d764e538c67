package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstseries/internal/delivery/http/helpers"
	"firstseries/internal/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Speakers:      []*domain.Speaker{{ID: "spk-1", FirstName: "Ada", LastName: "Lovelace"}},
		SpeakerSeries: map[string][]domain.SeriesSlug{"spk-1": {domain.SeriesCxOFirst}},
		Sponsors:      []*domain.Sponsor{{ID: "spn-1", Name: "Acme"}},
		SponsorSeries: map[string][]domain.SponsorSeries{"spn-1": {{Series: domain.SeriesCxOFirst, Tier: domain.TierGold}}},
	}
}

func TestCatalogController_GetCatalog(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := NewCatalogController(testLogger, &fakeCatalogService{catalog: testCatalog()}, &fakeTableRenderer{})
		rr := httptest.NewRecorder()

		c.GetCatalog(rr, httptest.NewRequest(http.MethodGet, "/admin/catalog", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var data domain.Catalog
		require.Nil(t, decodeEnvelope(t, rr, &data))
		require.Len(t, data.Speakers, 1)
		assert.Equal(t, []domain.SeriesSlug{domain.SeriesCxOFirst}, data.SpeakerSeries["spk-1"])
		assert.Equal(t, domain.TierGold, data.SponsorSeries["spn-1"][0].Tier)
	})

	t.Run("any failed read fails the load", func(t *testing.T) {
		svc := &fakeCatalogService{err: fmt.Errorf("load sponsor_series: %w", assert.AnError)}
		c := NewCatalogController(testLogger, svc, &fakeTableRenderer{})
		rr := httptest.NewRecorder()

		c.GetCatalog(rr, httptest.NewRequest(http.MethodGet, "/admin/catalog", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		apiErr := decodeEnvelope(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeInternalError, apiErr.Code)
	})
}

func TestCatalogController_Tables(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeCatalogService
		renderer   *fakeTableRenderer
		sponsors   bool
		wantStatus int
		wantBody   string
	}{
		{"speaker table", &fakeCatalogService{catalog: testCatalog()}, &fakeTableRenderer{}, false, http.StatusOK, `<table class="speakers"></table>`},
		{"sponsor table", &fakeCatalogService{catalog: testCatalog()}, &fakeTableRenderer{}, true, http.StatusOK, `<table class="sponsors"></table>`},
		{"load failure", &fakeCatalogService{err: assert.AnError}, &fakeTableRenderer{}, false, http.StatusInternalServerError, ""},
		{"render failure", &fakeCatalogService{catalog: testCatalog()}, &fakeTableRenderer{err: assert.AnError}, true, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalogController(testLogger, tt.svc, tt.renderer)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/speakers/table", nil)

			if tt.sponsors {
				c.SponsorTable(rr, req)
			} else {
				c.SpeakerTable(rr, req)
			}

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}
