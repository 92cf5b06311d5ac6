package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmynk/healthtracker/internal/auth"
	"github.com/mmynk/healthtracker/internal/chart"
	"github.com/mmynk/healthtracker/internal/middleware"
	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/service"
	"github.com/mmynk/healthtracker/internal/storage"
)

// chartPoints caps how many recent points each chart shows.
const chartPoints = 30

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := s.newHomeView(r, parseSection(r.URL.Query().Get("section")))
	view.Saved = r.URL.Query().Get("saved") == "1"
	s.renderHome(w, r, http.StatusOK, view)
}

func (s *Server) handleHomeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	fields := formFields(r.PostForm)
	formType := fields["form_type"]

	section, ok := formSections[formType]
	if !ok {
		view := s.newHomeView(r, sectionWelcome)
		view.Error = "Unknown form submitted."
		s.renderHome(w, r, http.StatusBadRequest, view)
		return
	}

	view := s.newHomeView(r, section)
	view.FormType = formType
	view.Form = fields

	var err error
	switch formType {
	case service.KindBasic:
		_, err = s.tracker.SaveBasicData(ctx, userID, fields)
	case service.KindHealth:
		_, err = s.tracker.SaveHealthData(ctx, userID, fields)
	case service.KindActivity:
		_, err = s.tracker.SaveActivityData(ctx, userID, fields)
	case formCalculator:
		view.Calculator = models.CalculatorType(fields["calculator_type"])
		view.Result, err = s.tracker.Calculate(ctx, userID, view.Calculator, fields)
		if err == nil {
			s.renderHome(w, r, http.StatusOK, view)
			return
		}
	}

	if err != nil {
		s.renderSubmitError(w, r, view, err)
		return
	}

	http.Redirect(w, r, homePath+"?section="+section+"&saved=1", http.StatusSeeOther)
}

func (s *Server) renderSubmitError(w http.ResponseWriter, r *http.Request, view *homeView, err error) {
	// A signed token can outlive its user, e.g. after the database is reset.
	if errors.Is(err, storage.ErrUnknownUser) {
		s.logger.Warn("Session refers to a missing user",
			"request_id", middleware.GetRequestID(r.Context()),
			"user_id", middleware.GetUserID(r.Context()),
		)
		auth.ClearSessionCookie(w, s.cookieSecure)
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	if !service.IsUserError(err) {
		s.internalError(r, "Failed to save submission", err)
		view.Error = genericErrorMessage
		s.renderHome(w, r, http.StatusInternalServerError, view)
		return
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		view.Invalid = ve
		view.Error = "Please correct the highlighted fields."
	} else {
		view.Error = userMessage(err)
	}
	s.renderHome(w, r, http.StatusBadRequest, view)
}

func (s *Server) newHomeView(r *http.Request, section string) *homeView {
	view := &homeView{
		Username: middleware.GetUsername(r.Context()),
		Section:  section,
		Sections: sections,
	}
	for _, t := range s.tracker.Calculators().Types() {
		c, _ := s.tracker.Calculators().Get(t)
		view.Calculators = append(view.Calculators, calculatorView{
			Type:   t,
			Label:  t.Label(),
			Fields: c.Fields(),
		})
	}
	return view
}

// renderHome loads the dashboard data and renders the page. A failure to
// load it replaces the page with a plain 500.
func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, view *homeView) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	dashboard, err := s.tracker.Dashboard(ctx, userID)
	if err != nil {
		s.internalError(r, "Failed to load dashboard", err)
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}
	view.Dashboard = dashboard

	if view.Section == sectionCharts {
		if view.Charts, err = s.buildCharts(r, userID); err != nil {
			s.internalError(r, "Failed to build charts", err)
			http.Error(w, genericErrorMessage, http.StatusInternalServerError)
			return
		}
	}

	s.render(w, r, status, "home.html", view)
}

func (s *Server) buildCharts(r *http.Request, userID int64) ([]chartView, error) {
	var charts []chartView
	for _, series := range storage.AllSeries() {
		label := series.Def().Label
		points, err := s.tracker.Series(r.Context(), userID, series, chartPoints)
		if err != nil {
			return nil, err
		}

		uri, err := s.charts.Render(label, points)
		if errors.Is(err, chart.ErrNotEnoughData) {
			charts = append(charts, chartView{Label: label, Missing: true})
			continue
		}
		if err != nil {
			return nil, err
		}
		charts = append(charts, chartView{Label: label, DataURI: template.URL(uri)})
	}
	return charts, nil
}

// formFields flattens a posted form to its first values.
func formFields(form url.Values) map[string]string {
	fields := make(map[string]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}

// userMessage turns a calculator error into a sentence for the page.
func userMessage(err error) string {
	msg := err.Error()
	if len(msg) == 0 {
		return genericErrorMessage
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
