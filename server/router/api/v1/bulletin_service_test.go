package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBulletinEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/bulletins", `{"title": "Optics drills", "exercise_count": 8}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created BulletinResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.UID)
	require.Equal(t, 8, created.ExerciseCount)

	rec = doRequest(e, http.MethodPost, "/api/v1/bulletins/"+created.UID+"/exercises/3/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled BulletinResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	require.True(t, toggled.CompletedExercises[3])

	rec = doRequest(e, http.MethodPost, "/api/v1/bulletins/"+created.UID+"/exercises/9/toggle", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBulletinRejectsNonPositiveCount(t *testing.T) {
	e := newTestServer(t)

	for _, body := range []string{
		`{"title": "No exercises", "exercise_count": 0}`,
		`{"title": "Negative", "exercise_count": -1}`,
	} {
		rec := doRequest(e, http.MethodPost, "/api/v1/bulletins", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := doRequest(e, http.MethodPost, "/api/v1/bulletins", `{"title": "Valid", "exercise_count": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created BulletinResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(e, http.MethodPatch, "/api/v1/bulletins/"+created.UID, `{"exercise_count": 0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
