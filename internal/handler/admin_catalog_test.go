package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

func newAdminHandler(t *testing.T) (*AdminHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewAdminHandler(
        repository.NewStationRepo(db),
        repository.NewRouteRepo(db),
        repository.NewTrainRepo(db),
        repository.NewCrewRepo(db),
        repository.NewJourneyRepo(db),
    ), mock
}

func adminRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestCreateTrainHandler(t *testing.T) {
    insertQ := regexp.QuoteMeta("INSERT INTO trains")

    t.Run("creates train and reports derived capacity", func(t *testing.T) {
        h, mock := newAdminHandler(t)
        mock.ExpectExec(insertQ).WithArgs("IC-501", 4, 20, uint64(1)).
            WillReturnResult(sqlmock.NewResult(7, 1))

        c, rec := adminRequest(t, `{"name":"IC-501","cargo_num":4,"places_in_cargo":20,"train_type_id":1}`)
        require.NoError(t, h.CreateTrain(c))
        require.Equal(t, http.StatusCreated, rec.Code)

        var body map[string]interface{}
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
        assert.EqualValues(t, 7, body["id"])
        assert.EqualValues(t, 80, body["capacity"])
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("rejects zero layout dimensions", func(t *testing.T) {
        h, _ := newAdminHandler(t)
        c, rec := adminRequest(t, `{"name":"IC-501","cargo_num":0,"places_in_cargo":20,"train_type_id":1}`)
        require.NoError(t, h.CreateTrain(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("rejects layouts larger than a real train", func(t *testing.T) {
        h, _ := newAdminHandler(t)
        // 90000 * 80000 overflows uint32; the bound check must fire
        // before any capacity is derived.
        c, rec := adminRequest(t, `{"name":"IC-501","cargo_num":90000,"places_in_cargo":80000,"train_type_id":1}`)
        require.NoError(t, h.CreateTrain(c))
        require.Equal(t, http.StatusBadRequest, rec.Code)
        assert.Contains(t, rec.Body.String(), "supported train size")
    })

    t.Run("rejects missing train type", func(t *testing.T) {
        h, _ := newAdminHandler(t)
        c, rec := adminRequest(t, `{"name":"IC-501","cargo_num":4,"places_in_cargo":20}`)
        require.NoError(t, h.CreateTrain(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })
}
