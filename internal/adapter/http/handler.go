package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
)

var errInvalidForm = errors.New("invalid form submission")

// failureGuidance accompanies every prediction error on the page.
const failureGuidance = "The model failed during prediction. Please check your input columns and model structure."

type fieldView struct {
	Name  string
	Label string
	Value string
	Error string
}

type resultView struct {
	ID    string
	Value string
	Label string
	Emoji string
	Color string
}

type errorView struct {
	Message  string
	Guidance string
}

type pageData struct {
	Cities  []string
	City    string
	Fields  []fieldView
	Problem string
	Result  *resultView
	Failure *errorView
}

func newPageData(state formState) pageData {
	fields := make([]fieldView, 0, len(numericFields))
	for _, f := range numericFields {
		fields = append(fields, fieldView{
			Name:  f.Name,
			Label: f.Label,
			Value: state.Values[f.Name],
			Error: state.Errors[f.Name],
		})
	}
	return pageData{
		Cities:  domain.Cities,
		City:    state.City,
		Fields:  fields,
		Problem: state.Problem,
	}
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, newPageData(defaultFormState()))
}

// handleSubmit runs exactly one prediction cycle per submission. A prediction
// failure is shown on the page and ends the request; the server keeps going.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	raw, state, err := parseForm(r)
	if err != nil {
		s.logger.Debug("rejected form submission", "error", err, "fields", state.Errors)
		s.render(w, http.StatusBadRequest, newPageData(state))
		return
	}

	data := newPageData(state)

	res, err := s.forecaster.Forecast(r.Context(), raw)
	if err != nil {
		data.Failure = &errorView{Message: err.Error(), Guidance: failureGuidance}
		s.render(w, http.StatusInternalServerError, data)
		return
	}

	data.Result = &resultView{
		ID:    res.ID,
		Value: domain.FormatConcentration(res.Value),
		Label: res.Band.Label,
		Emoji: res.Band.Emoji,
		Color: res.Band.Color,
	}
	s.render(w, http.StatusOK, data)
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck // client went away
}
