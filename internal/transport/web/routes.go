package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/receipt"
)

const (
	homePath     = "/api/v1/home"
	vehiclesPath = "/api/v1/vehicles"
	sessionsPath = "/api/v1/sessions"

	outcomeConfirmed          = "confirmed"
	outcomeMissingInformation = "missing_information"
)

type homeResponse struct {
	Featured  []catalog.Vehicle  `json:"featured"`
	Locations []catalog.Location `json:"locations"`
}

type vehiclesResponse struct {
	Vehicles []catalog.Vehicle     `json:"vehicles"`
	Total    int                   `json:"total"`
	Options  catalog.FilterOptions `json:"options"`
}

type sessionResponse struct {
	SessionID string          `json:"sessionId"`
	Trip      booking.Details `json:"trip"`
}

type action struct {
	Method string `json:"method"`
	Href   string `json:"href"`
}

type confirmationResponse struct {
	Status   string           `json:"status"`
	Summary  *booking.Summary `json:"summary,omitempty"`
	Message  string           `json:"message,omitempty"`
	Recovery *action          `json:"recovery,omitempty"`
}

func sessionPath(id string) string {
	return fmt.Sprintf("%s/%s", sessionsPath, id)
}

func sessionContext(r *http.Request) context.Context {
	return booking.NewContextWithSessionID(r.Context(), r.PathValue("sid"))
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "page not found")
}

func (s *Server) homeHandler(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, homeResponse{
		Featured:  s.catalog.Featured(featuredCount),
		Locations: s.catalog.Locations(),
	})
}

func (s *Server) locationsHandler(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.catalog.Locations())
}

func (s *Server) listVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	vehicles := catalog.Apply(s.catalog.Vehicles(), catalog.ParseCriteria(r.URL.Query()))

	s.respond(w, http.StatusOK, vehiclesResponse{
		Vehicles: vehicles,
		Total:    len(vehicles),
		Options:  s.catalog.Options(),
	})
}

// getVehicleHandler sends unknown ids back to the vehicle list.
func (s *Server) getVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.catalog.Vehicle(r.PathValue("id"))
	if !ok {
		http.Redirect(w, r, vehiclesPath, http.StatusFound)

		return
	}

	s.respond(w, http.StatusOK, vehicle)
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	quote, err := s.bManager.Quote(r.PathValue("id"), q.Get("pickupDate"), q.Get("dropoffDate"))
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.respond(w, http.StatusOK, quote.Display())
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, details, err := s.bManager.CreateSession(r.Context())
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	w.Header().Set("Location", sessionPath(id)+"/trip")
	s.respond(w, http.StatusCreated, sessionResponse{SessionID: id, Trip: details})
}

func (s *Server) getTripHandler(w http.ResponseWriter, r *http.Request) {
	details, err := s.bManager.Details(sessionContext(r))
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.respond(w, http.StatusOK, details)
}

func (s *Server) updateTripHandler(w http.ResponseWriter, r *http.Request) {
	var upd booking.TripUpdate

	if err := decodeBody(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	details, err := s.bManager.UpdateTrip(sessionContext(r), upd)
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.respond(w, http.StatusOK, details)
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.bManager.Reset(sessionContext(r)); err != nil {
		s.writeBookingError(w, err)

		return
	}

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

func (s *Server) startBookingHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.bManager.StartFlow(sessionContext(r), r.PathValue("id"))
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.respond(w, http.StatusCreated, view)
}

func (s *Server) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.bManager.Flow(sessionContext(r))
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.respond(w, http.StatusOK, view)
}

// updateHandler decodes a partial form update of type T and applies it.
func updateHandler[T any](s *Server, apply func(context.Context, T) (*booking.FlowView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd T

		if err := decodeBody(w, r, &upd); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())

			return
		}

		view, err := apply(sessionContext(r), upd)
		if err != nil {
			s.writeBookingError(w, err)

			return
		}

		s.respond(w, http.StatusOK, view)
	}
}

func (s *Server) stepHandler(move func(context.Context) (*booking.FlowView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := move(sessionContext(r))
		if err != nil {
			s.writeBookingError(w, err)

			return
		}

		s.respond(w, http.StatusOK, view)
	}
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.bManager.Submit(sessionContext(r)); err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.metrics.submitted.Inc()

	http.Redirect(w, r, sessionPath(r.PathValue("sid"))+"/confirmation", http.StatusSeeOther)
}

func (s *Server) confirmationHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.bManager.Confirmation(sessionContext(r))
	if missing, ok := missingInformation(r, err); ok {
		s.metrics.confirmations.WithLabelValues(outcomeMissingInformation).Inc()
		s.respond(w, http.StatusOK, missing)

		return
	}

	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.metrics.confirmations.WithLabelValues(outcomeConfirmed).Inc()
	s.respond(w, http.StatusOK, confirmationResponse{Status: outcomeConfirmed, Summary: summary}) //nolint:exhaustruct
}

func (s *Server) receiptHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.bManager.Confirmation(sessionContext(r))
	if missing, ok := missingInformation(r, err); ok {
		s.respond(w, http.StatusNotFound, missing)

		return
	}

	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="booking-%s.pdf"`, summary.Reference))

	if err := receipt.Render(w, summary); err != nil {
		s.l.LogErrorf("Could not render receipt: %v", err.Error())
	}
}

// missingInformation reports whether err means the booking cannot be shown.
// An incomplete session is recovered by resetting it; a session that expired
// or never existed is recovered by starting a new one.
func missingInformation(r *http.Request, err error) (confirmationResponse, bool) {
	var recovery action

	switch {
	case errors.Is(err, booking.ErrMissingInformation):
		recovery = action{Method: http.MethodPost, Href: sessionPath(r.PathValue("sid")) + "/reset"}
	case errors.Is(err, booking.ErrSessionNotFound):
		recovery = action{Method: http.MethodPost, Href: sessionsPath}
	default:
		return confirmationResponse{}, false //nolint:exhaustruct
	}

	//nolint:exhaustruct
	return confirmationResponse{
		Status:   outcomeMissingInformation,
		Message:  "We couldn't find all the details for your booking. Please try again or contact customer support.",
		Recovery: &recovery,
	}, true
}

func (s *Server) writeBookingError(w http.ResponseWriter, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: inputErr.Fields()})

		return
	}

	switch {
	case errors.Is(err, booking.ErrSessionID),
		errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, booking.ErrFlowNotFound),
		errors.Is(err, booking.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrVehicleUnavailable):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.l.LogErrorf("Could not process booking request: %v", err.Error())
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func (s *Server) handle(r *http.ServeMux, pattern string, h http.HandlerFunc) {
	r.Handle(pattern, s.applyMiddlewares(
		h,
		s.metricsMiddleware(pattern),
		s.loggerMiddleware(),
		s.recoverMiddleware(),
		s.requestIDMiddleware(),
	))
}

func (s *Server) addRoutes(r *http.ServeMux) {
	s.handle(r, "GET "+s.conf.LivenessEndpoint, s.livenessHandler)
	r.Handle("GET /metrics", promhttp.HandlerFor(s.conf.Gatherer, promhttp.HandlerOpts{})) //nolint:exhaustruct

	s.handle(r, "GET "+homePath, s.homeHandler)
	s.handle(r, "GET /api/v1/locations", s.locationsHandler)
	s.handle(r, "GET "+vehiclesPath, s.listVehiclesHandler)
	s.handle(r, "GET "+vehiclesPath+"/{id}", s.getVehicleHandler)
	s.handle(r, "GET "+vehiclesPath+"/{id}/quote", s.quoteHandler)

	s.handle(r, "POST "+sessionsPath, s.createSessionHandler)
	s.handle(r, "GET "+sessionsPath+"/{sid}/trip", s.getTripHandler)
	s.handle(r, "PATCH "+sessionsPath+"/{sid}/trip", s.updateTripHandler)
	s.handle(r, "POST "+sessionsPath+"/{sid}/reset", s.resetHandler)

	s.handle(r, "POST "+sessionsPath+"/{sid}/vehicles/{id}/booking", s.startBookingHandler)
	s.handle(r, "GET "+sessionsPath+"/{sid}/booking", s.getBookingHandler)
	s.handle(r, "PATCH "+sessionsPath+"/{sid}/booking/trip", updateHandler(s, s.bManager.UpdateFlowTrip))
	s.handle(r, "PATCH "+sessionsPath+"/{sid}/booking/contact", updateHandler(s, s.bManager.UpdateContact))
	s.handle(r, "PATCH "+sessionsPath+"/{sid}/booking/payment", updateHandler(s, s.bManager.UpdatePayment))
	s.handle(r, "POST "+sessionsPath+"/{sid}/booking/next", s.stepHandler(s.bManager.Next))
	s.handle(r, "POST "+sessionsPath+"/{sid}/booking/back", s.stepHandler(s.bManager.Back))
	s.handle(r, "POST "+sessionsPath+"/{sid}/booking/submit", s.submitHandler)

	s.handle(r, "GET "+sessionsPath+"/{sid}/confirmation", s.confirmationHandler)
	s.handle(r, "GET "+sessionsPath+"/{sid}/confirmation/receipt", s.receiptHandler)

	s.handle(r, "/", s.notFoundHandler)
}
