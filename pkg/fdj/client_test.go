package fdj

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/loto.csv":
			io.WriteString(w, "date;boule_1\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/loto.csv", server.URL+"/missing.csv", time.Second)

	body, err := client.Fetch(context.Background(), models.GameLoto)
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "date;boule_1\n", string(content))

	_, err = client.Fetch(context.Background(), models.GameEuroMillions)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrFetchFailure)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestClient_FetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url+"/loto.csv", url+"/euro.csv", time.Second)
	_, err := client.Fetch(context.Background(), models.GameLoto)
	assert.ErrorIs(t, err, models.ErrFetchFailure)
}

func TestClient_URL(t *testing.T) {
	client := NewClient("loto", "euro", 0)

	url, err := client.URL(models.GameEuroMillions)
	require.NoError(t, err)
	assert.Equal(t, "euro", url)

	_, err = client.URL(models.Game("keno"))
	assert.ErrorIs(t, err, models.ErrUnknownGame)
}
