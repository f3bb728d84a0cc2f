package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cbpmetrics/internal/config"
	apierrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/middleware"
	"cbpmetrics/internal/regional"
	"cbpmetrics/internal/services"
	"cbpmetrics/internal/shared/testutil"
)

// MockRegionalService is a mock implementation of RegionalServiceInterface
type MockRegionalService struct {
	mock.Mock
}

func (m *MockRegionalService) LocationQuotient(ctx context.Context, small, large regional.Series) (regional.LocationQuotientResult, error) {
	args := m.Called(small, large)
	return args.Get(0).(regional.LocationQuotientResult), args.Error(1)
}

func (m *MockRegionalService) ShiftShare(ctx context.Context, smallOld, smallNew, largeOld, largeNew regional.Series) (regional.ShiftShareResult, error) {
	args := m.Called(smallOld, smallNew, largeOld, largeNew)
	return args.Get(0).(regional.ShiftShareResult), args.Error(1)
}

func (m *MockRegionalService) Specialization(ctx context.Context, small, large regional.Series) (regional.SpecializationResult, error) {
	args := m.Called(small, large)
	return args.Get(0).(regional.SpecializationResult), args.Error(1)
}

func (m *MockRegionalService) TableLocationQuotient(ctx context.Context, table regional.IndustryTable, reference *regional.Series) ([]regional.GeoQuotient, error) {
	args := m.Called(table, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regional.GeoQuotient), args.Error(1)
}

func (m *MockRegionalService) SelectLevel(table regional.IndustryTable) regional.IndustryTable {
	return table
}

func (m *MockRegionalService) TotalCode() string {
	return regional.DefaultTotalCode
}

func newRouter(t *testing.T, svc RegionalServiceInterface) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)
	h := NewRegionalHandler(svc, middleware.NewValidator(logger, 1<<20), logger, eh)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Mount("/api/v1/regional", h.Routes())
	return r
}

func newServiceRouter(t *testing.T) chi.Router {
	t.Helper()
	cfg := config.Default().Analysis
	return newRouter(t, services.NewRegionalService(cfg, nil))
}

func post(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

const countyBody = `{"entries":[{"industry":"00","value":100},{"industry":"11","value":40},{"industry":"22","value":60}]}`
const stateBody = `{"entries":[{"industry":"00","value":1000},{"industry":"11","value":300},{"industry":"22","value":700}]}`

func TestRegionalHandler_LocationQuotient(t *testing.T) {
	r := newServiceRouter(t)

	rec := post(t, r, "/api/v1/regional/location-quotient", `{"small":`+countyBody+`,"large":`+stateBody+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LocationQuotientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "00", resp.TotalKey)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "11", resp.Rows[1].Industry)
	assert.Equal(t, "Agriculture, Forestry, Fishing and Hunting", resp.Rows[1].Title)
	require.NotNil(t, resp.Rows[1].Quotient)
	assert.InDelta(t, 0.4/0.3, *resp.Rows[1].Quotient, 1e-9)
}

func TestRegionalHandler_LocationQuotient_NullForUndefined(t *testing.T) {
	r := newServiceRouter(t)

	large := `{"entries":[{"industry":"00","value":10},{"industry":"11","value":0},{"industry":"22","value":10}]}`
	rec := post(t, r, "/api/v1/regional/location-quotient", `{"small":`+countyBody+`,"large":`+large+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	rows := body["rows"].([]interface{})
	row := rows[1].(map[string]interface{})
	assert.Equal(t, "11", row["industry"])
	assert.Contains(t, row, "quotient")
	assert.Nil(t, row["quotient"])
}

func TestRegionalHandler_ShiftShare(t *testing.T) {
	r := newServiceRouter(t)

	body := `{
		"small_old":` + countyBody + `,
		"small_new":{"entries":[{"industry":"00","value":120},{"industry":"11","value":50},{"industry":"22","value":70}]},
		"large_old":` + stateBody + `,
		"large_new":{"entries":[{"industry":"00","value":1100},{"industry":"11","value":360},{"industry":"22","value":740}]}
	}`
	rec := post(t, r, "/api/v1/regional/shift-share", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ShiftShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Summary, 5)
	assert.Equal(t, regional.ComponentSmallGrowth, resp.Summary[0].Component)
	require.NotNil(t, resp.Summary[0].Absolute)
	assert.InDelta(t, 20.0, *resp.Summary[0].Absolute, 1e-9)

	require.Len(t, resp.Rows, 3)
	require.NotNil(t, resp.Rows[1].LargeGrowthRate)
	assert.InDelta(t, 0.1, *resp.Rows[1].LargeGrowthRate, 1e-9)
}

func TestRegionalHandler_Specialization(t *testing.T) {
	r := newServiceRouter(t)

	rec := post(t, r, "/api/v1/regional/specialization", `{"small":`+countyBody+`,"large":`+stateBody+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SpecializationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Coefficient)
	assert.InDelta(t, 0.1, *resp.Coefficient, 1e-9)
	assert.Len(t, resp.Rows, 2)
}

func TestRegionalHandler_TableLocationQuotient(t *testing.T) {
	r := newServiceRouter(t)

	var rows []string
	for _, row := range testutil.CountyRows() {
		b, err := json.Marshal(TableRowDTO{Geography: row.County, Industry: row.NAICS, Value: &row.EMP})
		require.NoError(t, err)
		rows = append(rows, string(b))
	}

	rec := post(t, r, "/api/v1/regional/location-quotient/table", `{"level":"two_digit","rows":[`+strings.Join(rows, ",")+`]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Geographies)
	require.Len(t, resp.Rows, 6)
	assert.Equal(t, "001", resp.Rows[1].Geography)
	assert.Equal(t, "11", resp.Rows[1].Industry)
	require.NotNil(t, resp.Rows[1].Quotient)
	assert.InDelta(t, 1.2, *resp.Rows[1].Quotient, 1e-9)
}

func TestRegionalHandler_Problems(t *testing.T) {
	r := newServiceRouter(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantType   string
		wantArg    string
	}{
		{
			name:       "malformed json",
			path:       "/api/v1/regional/location-quotient",
			body:       `{"small":`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "missing large series",
			path:       "/api/v1/regional/location-quotient",
			body:       `{"small":` + countyBody + `}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "total key absent from series",
			path:       "/api/v1/regional/specialization",
			body:       `{"small":{"entries":[{"industry":"11","value":1}]},"large":` + stateBody + `}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeIndex,
			wantArg:    "small",
		},
		{
			name:       "small industry missing from large",
			path:       "/api/v1/regional/location-quotient",
			body:       `{"small":{"entries":[{"industry":"00","value":1},{"industry":"99","value":1}]},"large":` + stateBody + `}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeIndex,
			wantArg:    "large",
		},
		{
			name: "shift-share periods differ",
			path: "/api/v1/regional/shift-share",
			body: `{"small_old":` + countyBody + `,"small_new":{"entries":[{"industry":"00","value":1},{"industry":"11","value":1}]},` +
				`"large_old":` + stateBody + `,"large_new":` + stateBody + `}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeIndex,
			wantArg:    "small_new",
		},
		{
			name:       "unknown level",
			path:       "/api/v1/regional/location-quotient/table",
			body:       `{"level":"four_digit","rows":[{"geography":"001","industry":"00","value":1}]}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, r, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.NotEmpty(t, body["trace_id"])
			if tt.wantArg != "" {
				ctx, ok := body["context"].(map[string]interface{})
				require.True(t, ok, "problem has no context")
				assert.Equal(t, tt.wantArg, ctx["argument"])
			}
		})
	}
}

func TestRegionalHandler_ServiceTimeout(t *testing.T) {
	svc := new(MockRegionalService)
	svc.On("TableLocationQuotient", mock.Anything, (*regional.Series)(nil)).
		Return(nil, context.DeadlineExceeded)

	r := newRouter(t, svc)
	rec := post(t, r, "/api/v1/regional/location-quotient/table", `{"rows":[{"geography":"001","industry":"00","value":1}]}`)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, apierrors.TypeTimeout, decodeBody(t, rec)["type"])
	svc.AssertExpectations(t)
}

func TestRegionalHandler_ReferenceIsPassed(t *testing.T) {
	svc := new(MockRegionalService)
	svc.On("TableLocationQuotient", mock.Anything, mock.MatchedBy(func(ref *regional.Series) bool {
		return ref != nil && ref.Len() == 3 && ref.TotalKey() == "00"
	})).Return([]regional.GeoQuotient{{Geography: "001", Industry: "00", Value: 1, Quotient: 1}}, nil)

	r := newRouter(t, svc)
	rec := post(t, r, "/api/v1/regional/location-quotient/table",
		`{"reference":`+stateBody+`,"rows":[{"geography":"001","industry":"00","value":1}]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	svc.AssertExpectations(t)
}
