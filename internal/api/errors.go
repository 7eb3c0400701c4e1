package api

import (
	"errors"
	"net/http"

	"liftlog/workout-app/internal/metrics"
	"liftlog/workout-app/internal/series"
	"liftlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondServiceError maps a service error to its HTTP status and aborts the request.
func respondServiceError(c *gin.Context, m *metrics.Manager, err error) {
	var (
		code    int
		kind    string
		message = err.Error()
	)

	switch {
	case errors.Is(err, service.ErrValidation):
		code, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, service.ErrUnauthenticated):
		code, kind = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, service.ErrExerciseExists):
		code, kind = http.StatusConflict, "duplicate"
	case errors.Is(err, service.ErrExportDisabled):
		code, kind = http.StatusNotImplemented, "export_disabled"
	case errors.Is(err, series.ErrCorruptRecord):
		code, kind = http.StatusInternalServerError, "corrupt_record"
		message = "Stored workout data is corrupt"
		m.CounterCorruptRecords.Inc()
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("corrupt workout record")
	case errors.Is(err, service.ErrStoreUnavailable):
		code, kind = http.StatusServiceUnavailable, "store_unavailable"
		message = "Storage is temporarily unavailable"
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("store failure")
	default:
		code, kind = http.StatusInternalServerError, "internal"
		message = "An unexpected error occurred"
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
	}

	m.CounterHandleRequestErr.WithLabelValues(kind).Inc()
	_ = c.Error(err)
	abortWithError(c, code, message)
}
