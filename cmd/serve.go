package cmd

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chartdex/chart"
	"github.com/jsphweid/chartdex/model"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxChartBytes = 32 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves the parser over HTTP: POST /parse, POST /convert and GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Infof("listening on %s", config.ListenAddr)
		return http.ListenAndServe(config.ListenAddr, NewRouter(config.AllowedOrigins))
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func requestLogger(r *http.Request) (string, *logrus.Entry) {
	id := uuid.New().String()
	return id, logger.WithFields(logrus.Fields{"request_id": id, "path": r.URL.Path})
}

// HandleParse takes raw chart text as the request body.
func HandleParse(w http.ResponseWriter, r *http.Request) {
	id, log := requestLogger(r)
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChartBytes))
	if err != nil {
		log.WithError(err).Warn("could not read request body")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	parsed, err := chart.Parse(string(raw))
	if err != nil {
		log.WithError(err).Info("chart rejected")
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	parsed.Diagnostics.Log(log)
	writeJSON(w, http.StatusOK, model.ParseResponse{RequestId: id, Chart: parsed})
}

// HandleConvert converts ticks and times against the chart in the request.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	_, log := requestLogger(r)
	var input model.ConvertRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChartBytes)).Decode(&input); err != nil {
		log.WithError(err).Warn("could not unmarshal request body")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	parsed, err := chart.Parse(input.Chart)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	tl, err := chart.Timeline(parsed)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	res := model.ConvertResponse{
		Resolution: tl.Resolution(),
		Times:      make([]float64, 0, len(input.Ticks)),
		Ticks:      make([]model.Tick, 0, len(input.Times)),
	}
	for _, tick := range input.Ticks {
		res.Times = append(res.Times, tl.TickToTime(tick))
	}
	for _, t := range input.Times {
		res.Ticks = append(res.Ticks, tl.TimeToTick(t))
	}
	writeJSON(w, http.StatusOK, res)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func NewRouter(allowedOrigins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/health", handleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}
