package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = common.NewError(common.CodeInternal, "internal error", err)
	}
	JSON(w, statusFor(coded.Code), errorBody{Error: errorPayload{
		Code:    string(coded.Code),
		Message: coded.Message,
		Fields:  coded.Fields,
	}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
