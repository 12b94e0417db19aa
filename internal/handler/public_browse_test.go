package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

func newPublicHandler(t *testing.T) (*PublicHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewPublicHandler(
        repository.NewStationRepo(db),
        repository.NewRouteRepo(db),
        repository.NewTrainRepo(db),
        repository.NewCrewRepo(db),
        repository.NewJourneyRepo(db),
    ), mock
}

func browseRequest(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestListTrainsHandler(t *testing.T) {
    listQ := regexp.QuoteMeta("FROM trains t")

    t.Run("passes name and type filters through", func(t *testing.T) {
        h, mock := newPublicHandler(t)
        mock.ExpectQuery(listQ).WithArgs("%IC%", uint64(1), uint64(2)).WillReturnRows(
            sqlmock.NewRows([]string{"id", "name", "cargo_num", "places_in_cargo", "type"}).
                AddRow(2, "IC-501", 4, 20, "Intercity"))

        c, rec := browseRequest(t, "/v1/trains?name=IC&train_type=1,2")
        require.NoError(t, h.ListTrains(c))
        require.Equal(t, http.StatusOK, rec.Code)

        var body struct {
            Items []repository.TrainDetail `json:"items"`
        }
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
        require.Len(t, body.Items, 1)
        assert.Equal(t, uint32(80), body.Items[0].Capacity)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("rejects non-numeric train_type", func(t *testing.T) {
        h, _ := newPublicHandler(t)
        c, rec := browseRequest(t, "/v1/trains?train_type=1,abc")
        require.NoError(t, h.ListTrains(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })
}

func TestListJourneysHandler(t *testing.T) {
    t.Run("rejects malformed departure_time", func(t *testing.T) {
        h, _ := newPublicHandler(t)
        c, rec := browseRequest(t, "/v1/journeys?departure_time=today")
        require.NoError(t, h.ListJourneys(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("rejects non-numeric train", func(t *testing.T) {
        h, _ := newPublicHandler(t)
        c, rec := browseRequest(t, "/v1/journeys?train=fast")
        require.NoError(t, h.ListJourneys(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("oversold journey surfaces as server error", func(t *testing.T) {
        h, mock := newPublicHandler(t)
        dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
        mock.ExpectQuery(regexp.QuoteMeta("FROM journeys j")).WillReturnRows(
            sqlmock.NewRows([]string{"id", "route", "train", "departure_time", "arrival_time", "available"}).
                AddRow(1, "Lisbon -> Porto", "IC-501", dep, dep.Add(4*time.Hour), -2))

        c, rec := browseRequest(t, "/v1/journeys")
        require.NoError(t, h.ListJourneys(c))
        require.Equal(t, http.StatusInternalServerError, rec.Code)

        var body map[string]string
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
        assert.Equal(t, "inconsistent ticket data", body["error"])
        assert.NotContains(t, rec.Body.String(), "-2")
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}

func TestGetJourneyHandler(t *testing.T) {
    t.Run("invalid id", func(t *testing.T) {
        h, _ := newPublicHandler(t)
        e := echo.New()
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        c.SetParamNames("id")
        c.SetParamValues("abc")
        require.NoError(t, h.GetJourney(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("unknown journey", func(t *testing.T) {
        h, mock := newPublicHandler(t)
        mock.ExpectQuery(regexp.QuoteMeta("JOIN train_types tt")).WithArgs(uint64(99)).
            WillReturnRows(sqlmock.NewRows([]string{"id"}))

        e := echo.New()
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        c.SetParamNames("id")
        c.SetParamValues("99")
        require.NoError(t, h.GetJourney(c))
        assert.Equal(t, http.StatusNotFound, rec.Code)
    })
}
