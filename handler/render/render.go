package render

import (
	"encoding/json"
	"net/http"

	"leverage/core"
	"leverage/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	resp := errorResponse{Code: errCode, Msg: err.Error()}
	if statusCode >= http.StatusInternalServerError && errCode == int(core.ErrUnknown) {
		resp.Msg = core.ErrUnknown.Error()
		if ResponseErrorMessageAsHint {
			resp.Hint = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logrus.Errorln(err)
	}
}

// Fail write err with the status matching its error code
func Fail(w http.ResponseWriter, err error) {
	status, code := codes.Get(err)
	Error(w, status, code, err)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, codes.InvalidArguments, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}
