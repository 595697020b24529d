package render

import (
	"encoding/json"
	"net/http"

	"liquidator/core"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()}); err != nil {
		logrus.WithError(err).Errorln("render.Error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// Unauthorized unauthorized request error
func Unauthorized(w http.ResponseWriter, err error) {
	Error(w, http.StatusUnauthorized, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// Err renders err with the status of its error code
func Err(w http.ResponseWriter, err error) {
	code, ok := errors.Cause(err).(core.ErrorCode)
	if !ok {
		Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
		return
	}

	Error(w, StatusCode(code), int(code), err)
}

// StatusCode http status of an error code
func StatusCode(code core.ErrorCode) int {
	switch code {
	case core.ErrTokenNotFound, core.ErrRateNotFound:
		return http.StatusNotFound
	case core.ErrStaleState, core.ErrBalanceAlreadyFinalized:
		return http.StatusConflict
	case core.ErrUnknown, core.ErrRiskParameterFault, core.ErrDivisionByZeroRisk:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
