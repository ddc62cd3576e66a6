package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonlab/lawtrace/internal/domain"
	"github.com/hyeonlab/lawtrace/internal/normalize"
	"github.com/hyeonlab/lawtrace/internal/storage/in_mem"
	"github.com/hyeonlab/lawtrace/internal/verify"
)

func setupRouter(t *testing.T) (*echo.Echo, *in_mem.Store) {
	t.Helper()
	store := in_mem.NewStore()
	e := echo.New()
	NewAuditRouter(e, verify.NewService(store)).Bind()
	NewHealthRouter(e, store).Bind()
	return e, store
}

func seedLaborLaw(t *testing.T, store *in_mem.Store) {
	t.Helper()
	st := &domain.Statute{
		MasterID:        "001234",
		Name:            "근로기준법",
		NormalizedName:  normalize.StatuteName("근로기준법"),
		StatuteType:     "법률",
		EnforcementDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatuteActive,
	}
	_, err := store.UpsertStatute(context.Background(), st)
	require.NoError(t, err)
	_, err = store.UpsertArticle(context.Background(), &domain.Article{
		StatuteID:     st.ID,
		ArticleNo:     "제26조",
		NormalizedNo:  "26",
		Content:       "사용자는 근로자를 해고하려면 적어도 30일 전에 예고를 하여야 한다",
		EffectiveFrom: st.EnforcementDate,
	})
	require.NoError(t, err)
}

func doGet(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuditEndpoint_Verified(t *testing.T) {
	e, store := setupRouter(t)
	seedLaborLaw(t, store)

	rec := doGet(t, e, "/api/v1/audit?name=근로기준법&article=제26조&date=2025-01-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.AuditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verify.StatusVerified, got.Status)
	assert.Equal(t, "근로기준법", got.StatuteName)
	assert.Equal(t, "제26조", got.ArticleNo)
	assert.NotEmpty(t, got.CurrentText)
}

func TestAuditEndpoint_MalformedDateIsResultNotError(t *testing.T) {
	e, store := setupRouter(t)
	seedLaborLaw(t, store)

	rec := doGet(t, e, "/api/v1/audit?name=근로기준법&article=제26조&date=01-01-2025")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.AuditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verify.StatusInvalidInput, got.Status)
}

func TestAuditEndpoint_UnknownStatute(t *testing.T) {
	e, _ := setupRouter(t)

	rec := doGet(t, e, "/api/v1/audit?name=없는법&article=제1조")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.AuditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verify.StatusNotFound, got.Status)
}

func TestHierarchyEndpoint(t *testing.T) {
	e, store := setupRouter(t)
	seedLaborLaw(t, store)
	decree := &domain.Statute{
		MasterID:        "005678",
		Name:            "근로기준법 시행령",
		NormalizedName:  normalize.StatuteName("근로기준법 시행령"),
		StatuteType:     "대통령령",
		EnforcementDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatuteActive,
	}
	_, err := store.UpsertStatute(context.Background(), decree)
	require.NoError(t, err)

	rec := doGet(t, e, "/api/v1/hierarchy?a=근로기준법&b=근로기준법시행령")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.HierarchyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verify.StatusOK, got.Status)
	assert.Equal(t, "근로기준법", got.Winner)
	assert.Equal(t, "lex superior", got.Basis)
}

func TestDailyDiffEndpoint_CategoryFilter(t *testing.T) {
	e, store := setupRouter(t)
	seedLaborLaw(t, store)
	st, err := store.StatuteByMasterID(context.Background(), "001234")
	require.NoError(t, err)

	day := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendDiff(context.Background(), &domain.DiffRecord{
		StatuteID:     st.ID,
		ChangeType:    domain.ChangeModified,
		Summary:       "duration changed: 30일 → 60일",
		IsCritical:    true,
		EffectiveFrom: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DetectedAt:    day,
	}))
	require.NoError(t, store.AppendDiff(context.Background(), &domain.DiffRecord{
		StatuteID:     st.ID,
		ChangeType:    domain.ChangeModified,
		Summary:       "formatting only",
		EffectiveFrom: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DetectedAt:    day,
	}))

	rec := doGet(t, e, "/api/v1/diffs/daily?date=2025-01-15&category=critical")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.DailyDiffResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Diffs, 1)
	assert.True(t, got.Diffs[0].IsCritical)
}

func TestPrecedentEndpoint(t *testing.T) {
	e, store := setupRouter(t)
	require.NoError(t, store.SavePrecedent(context.Background(), &domain.Precedent{
		CaseNo:           "2019다12345",
		NormalizedCaseNo: "2019다12345",
		SeenAt:           time.Now(),
	}))

	rec := doGet(t, e, "/api/v1/precedent?case_no=2019다12345")
	require.Equal(t, http.StatusOK, rec.Code)

	var got verify.PrecedentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, verify.StatusOK, got.Status)
	assert.True(t, got.Exists)
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := setupRouter(t)

	rec := doGet(t, e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
