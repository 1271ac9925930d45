//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/chartdex/cmd"
	"github.com/jsphweid/chartdex/file"
	"github.com/jsphweid/chartdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

var server *httptest.Server
var basicChart string

func TestMain(m *testing.M) {
	raw, err := file.ReadChart("../testdata/basic.chart")
	if err != nil {
		panic(err.Error())
	}
	basicChart = raw
	server = httptest.NewServer(cmd.NewRouter([]string{"*"}))

	exitVal := m.Run()

	server.Close()
	os.Exit(exitVal)
}

func post(t *testing.T, path string, body io.Reader) (int, gjson.Result) {
	resp, err := http.Post(server.URL+path, "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, gjson.ParseBytes(dat)
}

func TestParseBasicChartE2E(t *testing.T) {
	status, res := post(t, "/parse", bytes.NewBufferString(basicChart))

	assert := assert.New(t)
	assert.Equal(http.StatusOK, status)
	assert.NotEmpty(res.Get("request_id").String())
	assert.Equal("Test Song", res.Get("chart.song.name").String())
	assert.Equal(int64(9), res.Get("chart.tracks.ExpertSingle.#").Int())
	assert.Equal(int64(2), res.Get(`chart.tracks.ExpertSingle.#(isHOPO==true)#|#`).Int())
	assert.Equal(3.0, res.Get("chart.tracks.ExpertSingle.8.assignedTime").Float())
	assert.Equal("ExpertDrums", res.Get("chart.diagnostics.0.section").String())
}

func TestConvertBasicChartE2E(t *testing.T) {
	body, err := json.Marshal(model.ConvertRequestBody{
		Chart: basicChart,
		Ticks: []model.Tick{0, 768, 1152, 1536},
		Times: []float64{1, 2.5, 3},
	})
	if err != nil {
		panic(err.Error())
	}
	status, res := post(t, "/convert", bytes.NewReader(body))

	assert := assert.New(t)
	assert.Equal(http.StatusOK, status)

	var convertResponse model.ConvertResponse
	if err := json.Unmarshal([]byte(res.Raw), &convertResponse); err != nil {
		panic(err.Error())
	}
	assert.Equal(model.ConvertResponse{
		Resolution: 192,
		Times:      []float64{0, 2, 2.5, 3},
		Ticks:      []model.Tick{384, 1152, 1536},
	}, convertResponse)
}

func TestRejectsBrokenChartE2E(t *testing.T) {
	status, res := post(t, "/parse", bytes.NewBufferString("[Song]\n{\nResolution = 192\n}"))

	assert := assert.New(t)
	assert.Equal(http.StatusUnprocessableEntity, status)
	assert.Equal("missing [SyncTrack] section in chart", res.Get("detail").String())
}
